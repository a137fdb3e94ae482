package dto

import (
	"vagas-rmc/internal/models"

	"github.com/google/uuid"
)

// ListCompaniesRequest pages through companies for moderation.
type ListCompaniesRequest struct {
	PageQuery
	Verified *bool `form:"verified"`
}

// VerifyCompanyRequest sets the verification flag; omitted means verify.
type VerifyCompanyRequest struct {
	Verified  *bool     `json:"verified,omitempty"`
	CompanyID uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"-"`
	IP        string    `json:"-"`
}

// ChangePlanRequest moves a company to another plan tier.
type ChangePlanRequest struct {
	PlanType  models.PlanType `json:"planType" validate:"required,oneof=FREE BASIC PROFESSIONAL PREMIUM"`
	CompanyID uuid.UUID       `json:"-"`
	UserID    uuid.UUID       `json:"-"`
	IP        string          `json:"-"`
}

// ListAuditLogsRequest filters the audit log.
type ListAuditLogsRequest struct {
	PageQuery
	UserID string `form:"userId" validate:"omitempty,uuid"`
	Action string `form:"action" validate:"omitempty,max=40"`
}
