package dto

import (
	"vagas-rmc/internal/models"

	"github.com/google/uuid"
)

// UpdateCandidateProfileRequest is a partial update: nil fields are left untouched.
type UpdateCandidateProfileRequest struct {
	FullName        *string           `json:"fullName,omitempty" validate:"omitempty,min=3,max=120"`
	Phone           *string           `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	ResidenceCityID *uuid.UUID        `json:"residenceCityId,omitempty"`
	DesiredPosition *string           `json:"desiredPosition,omitempty" validate:"omitempty,max=120"`
	Level           *models.JobLevel  `json:"level,omitempty" validate:"omitempty,oneof=INTERN APPRENTICE JUNIOR MID SENIOR"`
	AreaID          *uuid.UUID        `json:"areaId,omitempty"`
	ExperienceYears *int              `json:"experienceYears,omitempty" validate:"omitempty,min=0,max=50"`
	Education       *models.Education `json:"education,omitempty" validate:"omitempty,oneof=FUNDAMENTAL MEDIO TECNICO SUPERIOR_INCOMPLETO SUPERIOR POS_GRADUACAO MESTRADO DOUTORADO"`
	SalaryMin       *float64          `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *float64          `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	ResumeURL       *string           `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	Skills          []string          `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=60"`
	IsPublicProfile *bool             `json:"isPublicProfile,omitempty"`
	ReceiveAlerts   *bool             `json:"receiveAlerts,omitempty"`
	CurrentPassword *string           `json:"currentPassword,omitempty"`
	NewPassword     *string           `json:"newPassword,omitempty" validate:"omitempty,min=6,max=72"`
	UserID          uuid.UUID         `json:"-"`
	IP              string            `json:"-"`
}

// DeleteAccountRequest confirms an erasure request with the account password.
type DeleteAccountRequest struct {
	Password string    `json:"password" validate:"required"`
	Reason   *string   `json:"reason,omitempty" validate:"omitempty,max=500"`
	UserID   uuid.UUID `json:"-"`
	IP       string    `json:"-"`
}

// UpdateCompanyProfileRequest is a partial update: nil fields are left untouched.
type UpdateCompanyProfileRequest struct {
	TradeName       *string    `json:"tradeName,omitempty" validate:"omitempty,min=2,max=120"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	Whatsapp        *string    `json:"whatsapp,omitempty" validate:"omitempty,min=10,max=20"`
	Website         *string    `json:"website,omitempty" validate:"omitempty,url"`
	LogoURL         *string    `json:"logoUrl,omitempty" validate:"omitempty,url"`
	SegmentID       *uuid.UUID `json:"segmentId,omitempty"`
	CurrentPassword *string    `json:"currentPassword,omitempty"`
	NewPassword     *string    `json:"newPassword,omitempty" validate:"omitempty,min=6,max=72"`
	UserID          uuid.UUID  `json:"-"`
	IP              string     `json:"-"`
}

// CandidateProfileResponse is the candidate's own profile.
type CandidateProfileResponse struct {
	User      models.User      `json:"user"`
	Candidate models.Candidate `json:"candidate"`
}

// CompanyProfileResponse is the company's own profile with its plan.
type CompanyProfileResponse struct {
	User    models.User    `json:"user"`
	Company models.Company `json:"company"`
	Plan    *models.Plan   `json:"plan,omitempty"`
}

// ResumeSearchRequest drives the company-side candidate search.
type ResumeSearchRequest struct {
	PageQuery
	Q      string    `form:"q" validate:"max=100"`
	City   string    `form:"city" validate:"max=60"`
	Area   string    `form:"area" validate:"max=60"`
	Level  string    `form:"level" validate:"omitempty,oneof=INTERN APPRENTICE JUNIOR MID SENIOR"`
	UserID uuid.UUID `form:"-"`
}
