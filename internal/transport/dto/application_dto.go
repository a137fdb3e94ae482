package dto

import (
	"vagas-rmc/internal/models"

	"github.com/google/uuid"
)

// ApplyRequest defines the payload of an application.
type ApplyRequest struct {
	CoverLetter *string   `json:"coverLetter,omitempty" validate:"omitempty,max=5000"`
	Slug        string    `json:"-"` // From URL path
	UserID      uuid.UUID `json:"-"`
	IP          string    `json:"-"`
}

// ListCompanyApplicationsRequest filters the applications a company sees.
type ListCompanyApplicationsRequest struct {
	PageQuery
	JobID  string    `form:"jobId" validate:"omitempty,uuid"`
	Status string    `form:"status" validate:"omitempty,oneof=PENDING VIEWED SHORTLISTED INTERVIEW REJECTED HIRED"`
	UserID uuid.UUID `form:"-"`
}

// UpdateApplicationStatusRequest moves an application through the triage pipeline.
type UpdateApplicationStatusRequest struct {
	ApplicationID uuid.UUID                `json:"applicationId" validate:"required"`
	Status        models.ApplicationStatus `json:"status" validate:"required,oneof=PENDING VIEWED SHORTLISTED INTERVIEW REJECTED HIRED"`
	Feedback      *string                  `json:"feedback,omitempty" validate:"omitempty,max=2000"`
	UserID        uuid.UUID                `json:"-"`
	IP            string                   `json:"-"`
}

// ListCandidateApplicationsRequest filters the candidate's own applications.
type ListCandidateApplicationsRequest struct {
	PageQuery
	Status string    `form:"status" validate:"omitempty,oneof=PENDING VIEWED SHORTLISTED INTERVIEW REJECTED HIRED"`
	UserID uuid.UUID `form:"-"`
}

// ToggleFavoriteResponse reports the bookmark state after a toggle.
type ToggleFavoriteResponse struct {
	Favorited bool   `json:"favorited"`
	Message   string `json:"message"`
}
