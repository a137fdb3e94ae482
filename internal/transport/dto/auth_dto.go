package dto

import (
	"time"

	"vagas-rmc/internal/models"

	"github.com/google/uuid"
)

// LoginRequest defines the structure for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"` // Set by handler
}

// LoginResponse carries the session token; the same token is also set as a cookie.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      models.Principal `json:"user"`
}

// RegisterCandidateRequest defines the candidate sign-up payload.
type RegisterCandidateRequest struct {
	FullName        string    `json:"fullName" validate:"required,min=3,max=120"`
	Email           string    `json:"email" validate:"required,email,max=254"`
	Password        string    `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string    `json:"confirmPassword" validate:"required,eqfield=Password"`
	CPF             string    `json:"cpf" validate:"omitempty,cpf"`
	Phone           string    `json:"phone" validate:"required,min=10,max=20"`
	ResidenceCityID uuid.UUID `json:"residenceCityId" validate:"required"`
	AcceptTerms     bool      `json:"acceptTerms" validate:"eq=true"`
	IP              string    `json:"-"`
}

// RegisterCompanyRequest defines the company sign-up payload.
type RegisterCompanyRequest struct {
	LegalName       string      `json:"legalName" validate:"required,min=3,max=200"`
	TradeName       string      `json:"tradeName" validate:"required,min=2,max=120"`
	CNPJ            string      `json:"cnpj" validate:"required,cnpj"`
	Email           string      `json:"email" validate:"required,email,max=254"`
	Password        string      `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string      `json:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string      `json:"phone" validate:"required,min=10,max=20"`
	Whatsapp        *string     `json:"whatsapp,omitempty" validate:"omitempty,min=10,max=20"`
	Website         *string     `json:"website,omitempty" validate:"omitempty,url"`
	SegmentID       *uuid.UUID  `json:"segmentId,omitempty"`
	CityIDs         []uuid.UUID `json:"cityIds" validate:"required,min=1,max=18"`
	AcceptTerms     bool        `json:"acceptTerms" validate:"eq=true"`
	IP              string      `json:"-"`
}
