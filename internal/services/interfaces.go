package services

import (
	"context"
	"time"

	"vagas-rmc/internal/models"
	"vagas-rmc/internal/transport/dto"

	"github.com/google/uuid"
)

// AuthService defines the interface for sign-in and session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, req *dto.LoginRequest) (*models.Principal, error)
	IssueToken(principal models.Principal) (string, time.Time, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// RegistrationService defines the interface for account sign-up.
type RegistrationService interface {
	RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*models.User, error)
	RegisterCompany(ctx context.Context, req *dto.RegisterCompanyRequest) (*models.User, error)
}

// JobService defines the interface for the job catalog and company postings.
type JobService interface {
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]models.JobSummary, models.Pagination, error)
	// GetJobBySlug returns an ACTIVE posting. viewer may be nil.
	GetJobBySlug(ctx context.Context, slug string, viewer *models.Principal) (*models.JobDetail, error)
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	ListCompanyJobs(ctx context.Context, userID uuid.UUID) ([]models.JobSummary, error)
	UpdateJobStatus(ctx context.Context, req *dto.UpdateJobStatusRequest) (*models.Job, error)
}

// ApplicationService defines the interface for the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error)
	ListCompanyApplications(ctx context.Context, req *dto.ListCompanyApplicationsRequest) ([]models.CompanyApplication, models.Pagination, error)
	UpdateApplicationStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	ListCandidateApplications(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.CandidateApplication, models.Pagination, error)
	CancelApplication(ctx context.Context, userID, applicationID uuid.UUID, ip string) error
}

// FavoriteService defines the interface for bookmarked postings.
type FavoriteService interface {
	ToggleFavorite(ctx context.Context, userID uuid.UUID, slug string) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID, page dto.PageQuery) ([]models.FavoriteJob, models.Pagination, error)
}

// PlanService defines the interface for the plan catalog and quotas.
type PlanService interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	// QuotaFor returns the plan governing a company, FREE defaults when it has no subscription.
	QuotaFor(ctx context.Context, companyID uuid.UUID) (*models.Plan, error)
}

// ReferenceService defines the interface for the seeded lookup tables.
type ReferenceService interface {
	ListCities(ctx context.Context) ([]models.City, error)
	ListAreas(ctx context.Context) ([]models.JobArea, error)
	ListSegments(ctx context.Context) ([]models.Segment, error)
}

// ProfileService defines the interface for own-profile management and erasure.
type ProfileService interface {
	GetCandidateProfile(ctx context.Context, userID uuid.UUID) (*dto.CandidateProfileResponse, error)
	UpdateCandidateProfile(ctx context.Context, req *dto.UpdateCandidateProfileRequest) (*dto.CandidateProfileResponse, error)
	DeleteCandidateAccount(ctx context.Context, req *dto.DeleteAccountRequest) error
	GetCompanyProfile(ctx context.Context, userID uuid.UUID) (*dto.CompanyProfileResponse, error)
	UpdateCompanyProfile(ctx context.Context, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyProfileResponse, error)
}

// ResumeService defines the interface for the company-side candidate search.
type ResumeService interface {
	SearchCandidates(ctx context.Context, req *dto.ResumeSearchRequest) ([]models.Candidate, models.Pagination, error)
}

// DashboardService defines the interface for per-role dashboards.
type DashboardService interface {
	CandidateDashboard(ctx context.Context, userID uuid.UUID) (*models.CandidateStats, error)
	CompanyDashboard(ctx context.Context, userID uuid.UUID) (*models.CompanyStats, error)
	AdminDashboard(ctx context.Context) (*models.AdminStats, error)
}

// AdminService defines the interface for moderation operations.
type AdminService interface {
	ListCompanies(ctx context.Context, req *dto.ListCompaniesRequest) ([]models.Company, models.Pagination, error)
	VerifyCompany(ctx context.Context, req *dto.VerifyCompanyRequest) (*models.Company, error)
	ChangeCompanyPlan(ctx context.Context, req *dto.ChangePlanRequest) (*models.Plan, error)
	ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) ([]models.AuditLog, models.Pagination, error)
}
