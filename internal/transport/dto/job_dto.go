package dto

import (
	"vagas-rmc/internal/models"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// ListJobsRequest defines the public catalog query.
type ListJobsRequest struct {
	PageQuery
	Q            string   `form:"q" validate:"max=100"`
	City         string   `form:"city" validate:"max=60"`
	Area         string   `form:"area" validate:"max=60"`
	Level        string   `form:"level" validate:"omitempty,oneof=INTERN APPRENTICE JUNIOR MID SENIOR"`
	Modality     string   `form:"modality" validate:"omitempty,oneof=ONSITE HYBRID REMOTE"`
	ContractType string   `form:"contractType" validate:"omitempty,oneof=CLT PJ TEMPORARY INTERNSHIP APPRENTICE FREELANCER"`
	SalaryMin    *float64 `form:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax    *float64 `form:"salaryMax" validate:"omitempty,gte=0"`
	OrderBy      string   `form:"orderBy" validate:"omitempty,oneof=recent salary applications"`
}

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title           string              `json:"title" validate:"required,min=5,max=150"`
	Description     string              `json:"description" validate:"required,min=50,max=20000"`
	Requirements    *string             `json:"requirements,omitempty" validate:"omitempty,max=10000"`
	Benefits        *string             `json:"benefits,omitempty" validate:"omitempty,max=10000"`
	AreaID          uuid.UUID           `json:"areaId" validate:"required"`
	Level           models.JobLevel     `json:"level" validate:"required,oneof=INTERN APPRENTICE JUNIOR MID SENIOR"`
	Modality        models.Modality     `json:"modality" validate:"required,oneof=ONSITE HYBRID REMOTE"`
	ContractType    models.ContractType `json:"contractType" validate:"required,oneof=CLT PJ TEMPORARY INTERNSHIP APPRENTICE FREELANCER"`
	CityIDs         []uuid.UUID         `json:"cityIds" validate:"required,min=1,max=18"`
	SalaryMin       *float64            `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *float64            `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	HideSalary      bool                `json:"hideSalary"`
	WorkSchedule    *string             `json:"workSchedule,omitempty" validate:"omitempty,max=200"`
	ApplyByPlatform *bool               `json:"applyByPlatform,omitempty"`
	ApplyByWhatsapp *string             `json:"applyByWhatsapp,omitempty" validate:"omitempty,min=10,max=20"`
	ApplyByEmail    *string             `json:"applyByEmail,omitempty" validate:"omitempty,email"`
	ApplyByURL      *string             `json:"applyByUrl,omitempty" validate:"omitempty,url"`
	IsFeatured      bool                `json:"isFeatured"`
	IsHighlighted   bool                `json:"isHighlighted"`
	UserID          uuid.UUID           `json:"-"` // Set internally by handler from auth context
	IP              string              `json:"-"`
}

// UpdateJobStatusRequest defines the structure for pausing, resuming or closing a posting.
type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required,oneof=ACTIVE PAUSED CLOSED"`
	JobID  uuid.UUID        `json:"-"` // From URL path
	UserID uuid.UUID        `json:"-"`
	IP     string           `json:"-"`
}
