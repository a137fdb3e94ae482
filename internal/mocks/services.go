package mocks

import (
	"context"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Auth ---

type AuthService struct{ mock.Mock }

var _ services.AuthService = (*AuthService)(nil)

func (m *AuthService) Authenticate(ctx context.Context, req *dto.LoginRequest) (*models.Principal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}

func (m *AuthService) IssueToken(principal models.Principal) (string, time.Time, error) {
	args := m.Called(principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type RegistrationService struct{ mock.Mock }

var _ services.RegistrationService = (*RegistrationService)(nil)

func (m *RegistrationService) RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RegistrationService) RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// --- Jobs ---

type JobService struct{ mock.Mock }

var _ services.JobService = (*JobService)(nil)

func (m *JobService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.JobSummary, models.Pagination, error) {
	args := m.Called(ctx, req)
	jobs, _ := args.Get(0).([]models.JobSummary)
	return jobs, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *JobService) GetJobBySlug(ctx context.Context, slug string, viewer *models.Principal) (*models.JobDetail, error) {
	args := m.Called(ctx, slug, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobDetail), args.Error(1)
}

func (m *JobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *JobService) ListCompanyJobs(ctx context.Context, userID uuid.UUID) ([]models.JobSummary, error) {
	args := m.Called(ctx, userID)
	jobs, _ := args.Get(0).([]models.JobSummary)
	return jobs, args.Error(1)
}

func (m *JobService) UpdateJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

// --- Applications ---

type ApplicationService struct{ mock.Mock }

var _ services.ApplicationService = (*ApplicationService)(nil)

func (m *ApplicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *ApplicationService) ListCompanyApplications(ctx context.Context, req *dto.ListCompanyApplicationsRequest) ([]models.CompanyApplication, models.Pagination, error) {
	args := m.Called(ctx, req)
	apps, _ := args.Get(0).([]models.CompanyApplication)
	return apps, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *ApplicationService) UpdateApplicationStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *ApplicationService) ListCandidateApplications(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.CandidateApplication, models.Pagination, error) {
	args := m.Called(ctx, req)
	apps, _ := args.Get(0).([]models.CandidateApplication)
	return apps, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *ApplicationService) CancelApplication(ctx context.Context, userID, applicationID uuid.UUID, ip string) error {
	return m.Called(ctx, userID, applicationID, ip).Error(0)
}

// --- Favorites ---

type FavoriteService struct{ mock.Mock }

var _ services.FavoriteService = (*FavoriteService)(nil)

func (m *FavoriteService) ToggleFavorite(ctx context.Context, userID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, userID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.FavoriteJob, models.Pagination, error) {
	args := m.Called(ctx, userID, page)
	favorites, _ := args.Get(0).([]models.FavoriteJob)
	return favorites, args.Get(1).(models.Pagination), args.Error(2)
}
