package services_test

import (
	"context"
	"fmt"
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
	"golang.org/x/crypto/bcrypt"
)

type profileMocks struct {
	db        *mocks.TxBeginner
	users     *mocks.UserRepository
	cands     *mocks.CandidateRepository
	companies *mocks.CompanyRepository
	plans     *mocks.PlanRepository
	audit     *mocks.AuditRepository
	ref       *mocks.ReferenceRepository
}

func setupProfileServiceTest() (services.ProfileService, *profileMocks) {
	m := &profileMocks{
		db:        mocks.NewTxBeginner(),
		users:     &mocks.UserRepository{},
		cands:     &mocks.CandidateRepository{},
		companies: &mocks.CompanyRepository{},
		plans:     &mocks.PlanRepository{},
		audit:     &mocks.AuditRepository{},
		ref:       &mocks.ReferenceRepository{},
	}
	return services.NewProfileService(m.db, m.users, m.cands, m.companies, m.plans, m.audit, m.ref), m
}

func strPtr(s string) *string { return &s }

// --- Account deletion ---

func TestProfileService_DeleteCandidateAccount_Success(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	candidate := &models.Candidate{ID: uuid.New(), UserID: user.ID}

	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.cands.On("GetByUserID", mock.Anything, user.ID).Return(candidate, nil)
	m.cands.On("Anonymize", mock.Anything, candidate.ID, "Usuário Removido", "REMOVED").Return(nil).Once()
	m.users.On("Anonymize", mock.Anything, user.ID, fmt.Sprintf("deleted_%s@removed.local", user.ID), "DELETED", mock.Anything).Return(nil).Once()
	m.audit.On("Append", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Action == models.AuditDeleteAccount && e.Details["reason"] == "não procuro mais" &&
			e.IPAddress != nil && *e.IPAddress == "10.1.1.1"
	})).Return(nil).Once()

	err := svc.DeleteCandidateAccount(context.Background(), &dto.DeleteAccountRequest{
		Password: "secret123", Reason: strPtr("não procuro mais"), UserID: user.ID, IP: "10.1.1.1",
	})

	require.NoError(t, err)
	assert.True(t, m.db.Tx.Committed)
	m.cands.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

func TestProfileService_DeleteCandidateAccount_WrongPassword(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.DeleteCandidateAccount(context.Background(), &dto.DeleteAccountRequest{Password: "wrong", UserID: user.ID})

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	m.cands.AssertNotCalled(t, "Anonymize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_DeleteCandidateAccount_AlreadyAnonymized(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	user.AccountState = models.AccountStateAnonymized
	user.IsActive = false
	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.DeleteCandidateAccount(context.Background(), &dto.DeleteAccountRequest{Password: "secret123", UserID: user.ID})

	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProfileService_DeleteCandidateAccount_RollsBackOnFailure(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	candidate := &models.Candidate{ID: uuid.New(), UserID: user.ID}

	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.cands.On("GetByUserID", mock.Anything, user.ID).Return(candidate, nil)
	m.cands.On("Anonymize", mock.Anything, candidate.ID, mock.Anything, mock.Anything).Return(nil)
	m.users.On("Anonymize", mock.Anything, user.ID, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrNotFound)

	err := svc.DeleteCandidateAccount(context.Background(), &dto.DeleteAccountRequest{Password: "secret123", UserID: user.ID})

	require.Error(t, err)
	assert.False(t, m.db.Tx.Committed)
	assert.True(t, m.db.Tx.RolledBack)
}

// --- Candidate profile ---

func TestProfileService_UpdateCandidateProfile(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	candidate := &models.Candidate{ID: uuid.New(), UserID: user.ID, FullName: "Ana", Skills: []string{}}
	years := 4

	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.cands.On("GetByUserID", mock.Anything, user.ID).Return(candidate, nil)
	m.cands.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Candidate) bool {
		return c.FullName == "Ana Souza" && *c.ExperienceYears == 4 && assert.ObjectsAreEqual([]string{"Go", "SQL"}, c.Skills)
	})).Return(nil)
	m.users.On("UpdatePassword", mock.Anything, user.ID, mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")) == nil
	})).Return(nil)
	m.audit.On("Append", mock.Anything, mocks.ActionIs(models.AuditChangePassword)).Return(nil).Once()
	m.audit.On("Append", mock.Anything, mocks.ActionIs(models.AuditUpdateProfile)).Return(nil).Once()

	resp, err := svc.UpdateCandidateProfile(context.Background(), &dto.UpdateCandidateProfileRequest{
		FullName:        strPtr(" Ana Souza "),
		ExperienceYears: &years,
		Skills:          []string{"Go", " ", "go", "SQL"},
		CurrentPassword: strPtr("secret123"),
		NewPassword:     strPtr("newsecret"),
		UserID:          user.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", resp.Candidate.FullName)
	m.audit.AssertExpectations(t)
	m.users.AssertExpectations(t)
	assert.True(t, m.db.Tx.Committed)
}

func TestProfileService_UpdateCandidateProfile_PasswordChecks(t *testing.T) {
	tests := []struct {
		name    string
		current *string
		wantErr error
	}{
		{"missing current password", nil, services.ErrValidation},
		{"wrong current password", strPtr("nope"), services.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupProfileServiceTest()
			user := activeUser(t, models.RoleCandidate, "secret123")
			m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
			m.cands.On("GetByUserID", mock.Anything, user.ID).Return(&models.Candidate{ID: uuid.New()}, nil)

			_, err := svc.UpdateCandidateProfile(context.Background(), &dto.UpdateCandidateProfileRequest{
				CurrentPassword: tt.current, NewPassword: strPtr("newsecret"), UserID: user.ID,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			m.cands.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestProfileService_UpdateCandidateProfile_InvertedSalary(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCandidate, "secret123")
	min := 3000.0
	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.cands.On("GetByUserID", mock.Anything, user.ID).Return(&models.Candidate{ID: uuid.New(), SalaryMin: &min}, nil)

	_, err := svc.UpdateCandidateProfile(context.Background(), &dto.UpdateCandidateProfileRequest{
		SalaryMax: ptrFloat64(1000), UserID: user.ID,
	})

	assert.ErrorIs(t, err, services.ErrValidation)
}

// --- Company profile ---

func TestProfileService_GetCompanyProfile_DefaultsToFree(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCompany, "secret123")
	company := &models.Company{ID: uuid.New(), UserID: user.ID}

	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.companies.On("GetByUserID", mock.Anything, user.ID).Return(company, nil)
	m.plans.On("GetForCompany", mock.Anything, company.ID).Return(nil, storage.ErrNotFound)

	resp, err := svc.GetCompanyProfile(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, resp.Plan.Type)
	assert.Equal(t, models.DefaultMaxActiveJobs, resp.Plan.MaxActiveJobs)
}

func TestProfileService_UpdateCompanyProfile(t *testing.T) {
	svc, m := setupProfileServiceTest()
	user := activeUser(t, models.RoleCompany, "secret123")
	company := &models.Company{ID: uuid.New(), UserID: user.ID, TradeName: "Old"}
	segment := uuid.New()
	plan := &models.Plan{Type: models.PlanBasic, MaxActiveJobs: 5, MaxJobDays: 30}

	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.companies.On("GetByUserID", mock.Anything, user.ID).Return(company, nil)
	m.ref.On("SegmentExists", mock.Anything, segment).Return(true, nil)
	m.companies.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Company) bool {
		return c.TradeName == "New" && *c.SegmentID == segment
	})).Return(nil)
	m.audit.On("Append", mock.Anything, mocks.ActionIs(models.AuditUpdateProfile)).Return(nil)
	m.plans.On("GetForCompany", mock.Anything, company.ID).Return(plan, nil)

	resp, err := svc.UpdateCompanyProfile(context.Background(), &dto.UpdateCompanyProfileRequest{
		TradeName: strPtr("New"), SegmentID: &segment, UserID: user.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "New", resp.Company.TradeName)
	assert.Equal(t, plan, resp.Plan)
	m.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
