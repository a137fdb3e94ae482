package storage

import (
	"context"
	"time"

	"vagas-rmc/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner starts a database transaction. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// --- Filters ---

// JobOrder selects the secondary sort key of a job search.
type JobOrder string

const (
	JobOrderRecent       JobOrder = "recent"
	JobOrderSalary       JobOrder = "salary"
	JobOrderApplications JobOrder = "applications"
)

// JobFilter holds the conjunctive filters of a public job search. Empty
// fields are ignored.
type JobFilter struct {
	Query        string
	CitySlug     string
	AreaSlug     string
	Level        models.JobLevel
	Modality     models.Modality
	ContractType models.ContractType
	SalaryMin    *float64
	SalaryMax    *float64
	OrderBy      JobOrder
	Limit        int
	Offset       int
}

// ApplicationFilter narrows the applications a company sees.
type ApplicationFilter struct {
	CompanyID uuid.UUID
	JobID     *uuid.UUID
	Status    *models.ApplicationStatus
	Limit     int
	Offset    int
}

// CandidateSearchFilter drives the résumé search offered to companies.
type CandidateSearchFilter struct {
	Query    string
	CitySlug string
	AreaSlug string
	Level    models.JobLevel
	Limit    int
	Offset   int
}

// CompanyFilter lists companies for moderation.
type CompanyFilter struct {
	Verified *bool
	Limit    int
	Offset   int
}

// AuditFilter lists audit entries for administrators.
type AuditFilter struct {
	UserID *uuid.UUID
	Action *models.AuditAction
	Limit  int
	Offset int
}

// --- Repositories ---

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	WithTx(tx pgx.Tx) UserRepository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// Anonymize replaces the login identity with placeholders and marks the account ANONYMIZED.
	Anonymize(ctx context.Context, id uuid.UUID, placeholderEmail, sentinelHash string, at time.Time) error
}

// CandidateRepository defines the interface for candidate profile operations.
type CandidateRepository interface {
	WithTx(tx pgx.Tx) CandidateRepository
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Candidate, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	Update(ctx context.Context, candidate *models.Candidate) error
	// Anonymize scrubs every personal field and sets is_anonymized.
	Anonymize(ctx context.Context, id uuid.UUID, placeholderName, placeholderPhone string) error
	SearchPublic(ctx context.Context, filter CandidateSearchFilter) ([]models.Candidate, int, error)
}

// CompanyRepository defines the interface for company profile operations.
type CompanyRepository interface {
	WithTx(tx pgx.Tx) CompanyRepository
	Create(ctx context.Context, company *models.Company) error
	AddCities(ctx context.Context, companyID uuid.UUID, cityIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Company, error)
	ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error)
	Update(ctx context.Context, company *models.Company) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	List(ctx context.Context, filter CompanyFilter) ([]models.Company, int, error)
}

// JobRepository defines the interface for job posting operations.
type JobRepository interface {
	WithTx(tx pgx.Tx) JobRepository
	// Create inserts the job and its city links.
	Create(ctx context.Context, job *models.Job, cityIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// GetBySlug returns the posting with the given slug in any status.
	GetBySlug(ctx context.Context, slug string) (*models.JobDetail, error)
	SlugExists(ctx context.Context, companyID uuid.UUID, slug string) (bool, error)
	CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int, error)
	Search(ctx context.Context, filter JobFilter) ([]models.JobSummary, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.JobSummary, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, publishedAt *time.Time) error
}

// ApplicationRepository defines the interface for job application operations.
type ApplicationRepository interface {
	WithTx(tx pgx.Tx) ApplicationRepository
	Create(ctx context.Context, app *models.Application) error
	Exists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	// UpdateStatus writes status and feedback; viewedAt is only stored when the column is still NULL.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, feedback *string, viewedAt *time.Time) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForCompany(ctx context.Context, filter ApplicationFilter) ([]models.CompanyApplication, int, error)
	ListForCandidate(ctx context.Context, candidateID uuid.UUID, status *models.ApplicationStatus, limit, offset int) ([]models.CandidateApplication, int, error)
}

// FavoriteRepository defines the interface for favorite job operations.
type FavoriteRepository interface {
	Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	Add(ctx context.Context, candidateID, jobID uuid.UUID) error
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]models.FavoriteJob, int, error)
}

// PlanRepository defines the interface for plans and subscriptions.
type PlanRepository interface {
	WithTx(tx pgx.Tx) PlanRepository
	List(ctx context.Context) ([]models.Plan, error)
	GetByType(ctx context.Context, planType models.PlanType) (*models.Plan, error)
	// GetForCompany returns the plan of the company's active subscription, or ErrNotFound.
	GetForCompany(ctx context.Context, companyID uuid.UUID) (*models.Plan, error)
	Subscribe(ctx context.Context, companyID, planID uuid.UUID) error
}

// AuditRepository is append-only by construction.
type AuditRepository interface {
	WithTx(tx pgx.Tx) AuditRepository
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditFilter) ([]models.AuditLog, int, error)
}

// ReferenceRepository serves the seeded lookup tables.
type ReferenceRepository interface {
	ListCities(ctx context.Context) ([]models.City, error)
	ListAreas(ctx context.Context) ([]models.JobArea, error)
	ListSegments(ctx context.Context) ([]models.Segment, error)
	// CountCities returns how many of ids exist.
	CountCities(ctx context.Context, ids []uuid.UUID) (int, error)
	AreaExists(ctx context.Context, id uuid.UUID) (bool, error)
	SegmentExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// StatsRepository aggregates dashboard counters.
type StatsRepository interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	CandidateStats(ctx context.Context, candidateID uuid.UUID) (*models.CandidateStats, error)
	CompanyStats(ctx context.Context, companyID uuid.UUID) (*models.CompanyStats, error)
}
