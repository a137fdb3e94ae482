package services_test

import (
	"context"
	"testing"

	"vagas-rmc/internal/mocks"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/storage"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_VerifyCompany_DefaultsToVerified(t *testing.T) {
	db := mocks.NewTxBeginner()
	companies := &mocks.CompanyRepository{}
	audit := &mocks.AuditRepository{}
	svc := services.NewAdminService(db, companies, &mocks.PlanRepository{}, audit)
	companyID := uuid.New()

	companies.On("SetVerified", mock.Anything, companyID, true).Return(nil)
	companies.On("GetByID", mock.Anything, companyID).Return(&models.Company{ID: companyID, IsVerified: true}, nil)
	audit.On("Append", mock.Anything, mocks.ActionIs(models.AuditVerifyCompany)).Return(nil)

	company, err := svc.VerifyCompany(context.Background(), &dto.VerifyCompanyRequest{CompanyID: companyID, UserID: uuid.New()})

	require.NoError(t, err)
	assert.True(t, company.IsVerified)
	assert.True(t, db.Tx.Committed)
}

func TestAdminService_VerifyCompany_Unknown(t *testing.T) {
	companies := &mocks.CompanyRepository{}
	svc := services.NewAdminService(mocks.NewTxBeginner(), companies, &mocks.PlanRepository{}, &mocks.AuditRepository{})
	companies.On("SetVerified", mock.Anything, mock.Anything, false).Return(storage.ErrNotFound)
	verified := false

	_, err := svc.VerifyCompany(context.Background(), &dto.VerifyCompanyRequest{Verified: &verified, CompanyID: uuid.New()})

	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAdminService_ChangeCompanyPlan(t *testing.T) {
	db := mocks.NewTxBeginner()
	companies := &mocks.CompanyRepository{}
	plans := &mocks.PlanRepository{}
	audit := &mocks.AuditRepository{}
	svc := services.NewAdminService(db, companies, plans, audit)
	companyID := uuid.New()
	premium := &models.Plan{ID: uuid.New(), Type: models.PlanPremium, MaxActiveJobs: models.UnlimitedJobs}

	plans.On("GetByType", mock.Anything, models.PlanPremium).Return(premium, nil)
	companies.On("GetByID", mock.Anything, companyID).Return(&models.Company{ID: companyID}, nil)
	plans.On("Subscribe", mock.Anything, companyID, premium.ID).Return(nil).Once()
	audit.On("Append", mock.Anything, mocks.ActionIs(models.AuditChangePlan)).Return(nil)

	plan, err := svc.ChangeCompanyPlan(context.Background(), &dto.ChangePlanRequest{PlanType: models.PlanPremium, CompanyID: companyID})

	require.NoError(t, err)
	assert.True(t, plan.Unlimited())
	plans.AssertExpectations(t)
	assert.True(t, db.Tx.Committed)
}

func TestAdminService_ListAuditLogs(t *testing.T) {
	audit := &mocks.AuditRepository{}
	svc := services.NewAdminService(mocks.NewTxBeginner(), &mocks.CompanyRepository{}, &mocks.PlanRepository{}, audit)
	userID := uuid.New()

	audit.On("List", mock.Anything, mock.MatchedBy(func(f storage.AuditFilter) bool {
		return *f.UserID == userID && *f.Action == models.AuditLogin && f.Limit == 5 && f.Offset == 10
	})).Return([]models.AuditLog{{Action: models.AuditLogin}}, 11, nil)

	logs, page, err := svc.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{
		PageQuery: dto.PageQuery{Page: 3, Limit: 5}, UserID: userID.String(), Action: "LOGIN",
	})

	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, 3, page.TotalPages)

	_, _, err = svc.ListAuditLogs(context.Background(), &dto.ListAuditLogsRequest{UserID: "not-a-uuid"})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestDashboardService_CompanyDashboard(t *testing.T) {
	stats := &mocks.StatsRepository{}
	companies := &mocks.CompanyRepository{}
	plans := &mocks.PlanRepository{}
	svc := services.NewDashboardService(stats, &mocks.CandidateRepository{}, companies, plans)
	company := &models.Company{ID: uuid.New(), UserID: uuid.New()}

	companies.On("GetByUserID", mock.Anything, company.UserID).Return(company, nil)
	stats.On("CompanyStats", mock.Anything, company.ID).Return(&models.CompanyStats{ActiveJobs: 1, TotalViews: 40}, nil)
	plans.On("GetForCompany", mock.Anything, company.ID).Return(nil, storage.ErrNotFound)

	got, err := svc.CompanyDashboard(context.Background(), company.UserID)

	require.NoError(t, err)
	assert.Equal(t, 1, got.ActiveJobs)
	assert.Equal(t, models.DefaultMaxActiveJobs, got.MaxActiveJobs)
	assert.Equal(t, models.PlanFree, got.Plan.Type)
}

func TestResumeService_SearchCandidates(t *testing.T) {
	cands := &mocks.CandidateRepository{}
	companies := &mocks.CompanyRepository{}
	plans := &mocks.PlanRepository{}
	svc := services.NewResumeService(cands, companies, plans)
	company := &models.Company{ID: uuid.New(), UserID: uuid.New()}
	companies.On("GetByUserID", mock.Anything, company.UserID).Return(company, nil)

	t.Run("plan without resume search", func(t *testing.T) {
		plans.On("GetForCompany", mock.Anything, company.ID).Return(&models.Plan{Type: models.PlanBasic, MaxJobDays: 30}, nil).Once()

		_, _, err := svc.SearchCandidates(context.Background(), &dto.ResumeSearchRequest{UserID: company.UserID})

		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("plan with resume search hides documents", func(t *testing.T) {
		plans.On("GetForCompany", mock.Anything, company.ID).Return(&models.Plan{Type: models.PlanProfessional, MaxJobDays: 30, CanSearchResume: true}, nil).Once()
		cands.On("SearchPublic", mock.Anything, mock.MatchedBy(func(f storage.CandidateSearchFilter) bool {
			return f.Query == "go" && f.Limit == 20
		})).Return([]models.Candidate{{FullName: "Ana", CPF: strPtr("52998224725")}}, 1, nil)

		list, _, err := svc.SearchCandidates(context.Background(), &dto.ResumeSearchRequest{Q: "go", UserID: company.UserID})

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Nil(t, list[0].CPF)
	})
}
