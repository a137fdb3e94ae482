package models

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the minimal identity carried by the session token.
type Principal struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// User represents the users table
type User struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Email          string       `json:"email" db:"email"`
	PasswordHash   string       `json:"-" db:"password_hash"`
	Role           Role         `json:"role" db:"role"`
	IsActive       bool         `json:"isActive" db:"is_active"`
	AccountState   AccountState `json:"accountState" db:"account_state"`
	ConsentedAt    *time.Time   `json:"consentedAt,omitempty" db:"consented_at"`
	ConsentVersion *string      `json:"consentVersion,omitempty" db:"consent_version"`
	LastLoginAt    *time.Time   `json:"lastLoginAt,omitempty" db:"last_login_at"`
	DataDeletedAt  *time.Time   `json:"dataDeletedAt,omitempty" db:"data_deleted_at"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// CanSignIn reports whether the account may authenticate.
func (u *User) CanSignIn() bool {
	return u.IsActive && u.AccountState != AccountStateAnonymized
}

// --- Reference data ---

type City struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}

type JobArea struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}

type Segment struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}

// Plan is a subscription tier. MaxActiveJobs == UnlimitedJobs disables the quota.
type Plan struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Type            PlanType  `json:"type" db:"type"`
	Name            string    `json:"name" db:"name"`
	MaxActiveJobs   int       `json:"maxActiveJobs" db:"max_active_jobs"`
	MaxJobDays      int       `json:"maxJobDays" db:"max_job_days"`
	CanHighlight    bool      `json:"canHighlight" db:"can_highlight"`
	CanFeature      bool      `json:"canFeature" db:"can_feature"`
	CanSearchResume bool      `json:"canSearchResume" db:"can_search_resume"`
	PriceMonthly    float64   `json:"priceMonthly" db:"price_monthly"`
	PriceYearly     *float64  `json:"priceYearly,omitempty" db:"price_yearly"`
}

// Unlimited reports whether the plan has no active-job quota.
func (p *Plan) Unlimited() bool {
	return p.MaxActiveJobs == UnlimitedJobs
}

// Candidate represents the candidates table
type Candidate struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"userId" db:"user_id"`
	FullName        string     `json:"fullName" db:"full_name"`
	CPF             *string    `json:"cpf,omitempty" db:"cpf"`
	Phone           string     `json:"phone" db:"phone"`
	ResidenceCityID *uuid.UUID `json:"residenceCityId,omitempty" db:"residence_city_id"`
	DesiredPosition *string    `json:"desiredPosition,omitempty" db:"desired_position"`
	Level           *JobLevel  `json:"level,omitempty" db:"level"`
	AreaID          *uuid.UUID `json:"areaId,omitempty" db:"area_id"`
	ExperienceYears *int       `json:"experienceYears,omitempty" db:"experience_years"`
	Education       *Education `json:"education,omitempty" db:"education"`
	SalaryMin       *float64   `json:"salaryMin,omitempty" db:"salary_min"`
	SalaryMax       *float64   `json:"salaryMax,omitempty" db:"salary_max"`
	ResumeURL       *string    `json:"resumeUrl,omitempty" db:"resume_url"`
	ResumeText      *string    `json:"resumeText,omitempty" db:"resume_text"`
	Skills          []string   `json:"skills" db:"skills"`
	IsPublicProfile bool       `json:"isPublicProfile" db:"is_public_profile"`
	ReceiveAlerts   bool       `json:"receiveAlerts" db:"receive_alerts"`
	IsAnonymized    bool       `json:"isAnonymized" db:"is_anonymized"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// Company represents the companies table
type Company struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	LegalName   string     `json:"legalName" db:"legal_name"`
	TradeName   string     `json:"tradeName" db:"trade_name"`
	CNPJ        string     `json:"cnpj" db:"cnpj"`
	Phone       string     `json:"phone" db:"phone"`
	Whatsapp    *string    `json:"whatsapp,omitempty" db:"whatsapp"`
	Website     *string    `json:"website,omitempty" db:"website"`
	Description *string    `json:"description,omitempty" db:"description"`
	LogoURL     *string    `json:"logoUrl,omitempty" db:"logo_url"`
	SegmentID   *uuid.UUID `json:"segmentId,omitempty" db:"segment_id"`
	IsVerified  bool       `json:"isVerified" db:"is_verified"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Job represents the jobs table
type Job struct {
	ID              uuid.UUID    `json:"id"`
	CompanyID       uuid.UUID    `json:"companyId"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Description     string       `json:"description"`
	Requirements    *string      `json:"requirements,omitempty"`
	Benefits        *string      `json:"benefits,omitempty"`
	AreaID          uuid.UUID    `json:"areaId"`
	Level           JobLevel     `json:"level"`
	Modality        Modality     `json:"modality"`
	ContractType    ContractType `json:"contractType"`
	SalaryMin       *float64     `json:"salaryMin,omitempty"`
	SalaryMax       *float64     `json:"salaryMax,omitempty"`
	HideSalary      bool         `json:"hideSalary"`
	WorkSchedule    *string      `json:"workSchedule,omitempty"`
	ApplyByPlatform bool         `json:"applyByPlatform"`
	ApplyByWhatsapp *string      `json:"applyByWhatsapp,omitempty"`
	ApplyByEmail    *string      `json:"applyByEmail,omitempty"`
	ApplyByURL      *string      `json:"applyByUrl,omitempty"`
	Status          JobStatus    `json:"status"`
	ViewCount       int          `json:"viewCount"`
	IsFeatured      bool         `json:"isFeatured"`
	IsHighlighted   bool         `json:"isHighlighted"`
	PublishedAt     *time.Time   `json:"publishedAt,omitempty"`
	ExpiresAt       *time.Time   `json:"expiresAt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// CompanySummary is the public slice of a company shown next to its postings.
type CompanySummary struct {
	ID         uuid.UUID `json:"id"`
	TradeName  string    `json:"tradeName"`
	LogoURL    *string   `json:"logoUrl,omitempty"`
	IsVerified bool      `json:"isVerified"`
}

// JobSummary is a job as shown in listings.
type JobSummary struct {
	Job
	Company          CompanySummary `json:"company"`
	Area             JobArea        `json:"area"`
	Cities           []City         `json:"cities"`
	ApplicationCount int            `json:"applicationCount"`
}

// JobDetail is a single posting with viewer-specific flags.
type JobDetail struct {
	JobSummary
	CompanyDescription *string `json:"companyDescription,omitempty"`
	CompanyWebsite     *string `json:"companyWebsite,omitempty"`
	HasApplied         bool    `json:"hasApplied"`
	IsFavorited        bool    `json:"isFavorited"`
}

// Application represents the applications table
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"jobId"`
	CandidateID uuid.UUID         `json:"candidateId"`
	Status      ApplicationStatus `json:"status"`
	MatchScore  int               `json:"matchScore"`
	CoverLetter *string           `json:"coverLetter,omitempty"`
	Feedback    *string           `json:"feedback,omitempty"`
	ViewedAt    *time.Time        `json:"viewedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// CandidateSummary is the candidate information a company sees on an application.
type CandidateSummary struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"fullName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Level           *JobLevel `json:"level,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	Skills          []string  `json:"skills"`
	ResumeURL       *string   `json:"resumeUrl,omitempty"`
	IsAnonymized    bool      `json:"isAnonymized"`
}

// JobRef identifies a posting inside another listing.
type JobRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

// CompanyApplication is an application as listed for the hiring company.
type CompanyApplication struct {
	Application
	Job       JobRef           `json:"job"`
	Candidate CandidateSummary `json:"candidate"`
}

// CandidateApplication is an application as listed for the candidate.
type CandidateApplication struct {
	Application
	Job     JobRef         `json:"job"`
	Company CompanySummary `json:"company"`
}

// FavoriteJob is a bookmarked posting.
type FavoriteJob struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID uuid.UUID  `json:"candidateId"`
	JobID       uuid.UUID  `json:"jobId"`
	CreatedAt   time.Time  `json:"createdAt"`
	Job         JobSummary `json:"job"`
}

// AuditLog represents the audit_logs table. Rows are insert-only.
type AuditLog struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	UserID    *uuid.UUID             `json:"userId,omitempty" db:"user_id"`
	Action    AuditAction            `json:"action" db:"action"`
	Entity    string                 `json:"entity" db:"entity"`
	EntityID  *string                `json:"entityId,omitempty" db:"entity_id"`
	Details   map[string]interface{} `json:"details,omitempty" db:"details"`
	IPAddress *string                `json:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}

// Pagination describes a page of a larger result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes TotalPages for the given page window.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// --- Dashboards ---

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AdminStats struct {
	Users               int          `json:"users"`
	Candidates          int          `json:"candidates"`
	Companies           int          `json:"companies"`
	UnverifiedCompanies int          `json:"unverifiedCompanies"`
	Jobs                int          `json:"jobs"`
	ActiveJobs          int          `json:"activeJobs"`
	Applications        int          `json:"applications"`
	JobsByCity          []NamedCount `json:"jobsByCity"`
	JobsByArea          []NamedCount `json:"jobsByArea"`
}

type CandidateStats struct {
	Applications       int                    `json:"applications"`
	Pending            int                    `json:"pending"`
	Viewed             int                    `json:"viewed"`
	Favorites          int                    `json:"favorites"`
	RecentApplications []CandidateApplication `json:"recentApplications"`
}

type CompanyStats struct {
	ActiveJobs          int   `json:"activeJobs"`
	TotalApplications   int   `json:"totalApplications"`
	PendingApplications int   `json:"pendingApplications"`
	TotalViews          int   `json:"totalViews"`
	Plan                *Plan `json:"plan,omitempty"`
	MaxActiveJobs       int   `json:"maxActiveJobs"`
}
