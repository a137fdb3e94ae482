package handlers

import (
	"net/http"

	"vagas-rmc/internal/services"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the seeded lookups and the plan catalog.
type ReferenceHandler struct {
	reference services.ReferenceService
	plans     services.PlanService
}

func NewReferenceHandler(reference services.ReferenceService, plans services.PlanService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference, plans: plans}
}

// ListCities godoc
// @Summary      RMC municipalities
// @Tags         reference
// @Produce      json
// @Success      200 {object}  dto.Response{data=[]models.City}
// @Router       /cities [get]
func (h *ReferenceHandler) ListCities(c *gin.Context) {
	cities, err := h.reference.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, err, "ListCities")
		return
	}
	respondOK(c, http.StatusOK, cities)
}

// ListAreas godoc
// @Summary      Job areas
// @Tags         reference
// @Produce      json
// @Success      200 {object}  dto.Response{data=[]models.JobArea}
// @Router       /areas [get]
func (h *ReferenceHandler) ListAreas(c *gin.Context) {
	areas, err := h.reference.ListAreas(c.Request.Context())
	if err != nil {
		respondError(c, err, "ListAreas")
		return
	}
	respondOK(c, http.StatusOK, areas)
}

// ListSegments godoc
// @Summary      Company segments
// @Tags         reference
// @Produce      json
// @Success      200 {object}  dto.Response{data=[]models.Segment}
// @Router       /segments [get]
func (h *ReferenceHandler) ListSegments(c *gin.Context) {
	segments, err := h.reference.ListSegments(c.Request.Context())
	if err != nil {
		respondError(c, err, "ListSegments")
		return
	}
	respondOK(c, http.StatusOK, segments)
}

// ListPlans godoc
// @Summary      Plan catalog
// @Tags         reference
// @Produce      json
// @Success      200 {object}  dto.Response{data=[]models.Plan}
// @Router       /plans [get]
func (h *ReferenceHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "ListPlans")
		return
	}
	respondOK(c, http.StatusOK, plans)
}
