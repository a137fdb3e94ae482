package dto

import "vagas-rmc/internal/models"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Code       string             `json:"code,omitempty"`
	Message    string             `json:"message,omitempty"`
	Details    map[string]string  `json:"details,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// PageQuery is the page window accepted by list endpoints. Zero values fall
// back to page 1 and the endpoint's default size; sizes above the maximum are clamped.
type PageQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1"`
}
