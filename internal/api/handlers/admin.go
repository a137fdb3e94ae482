package handlers

import (
	"net/http"

	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves moderation and the dashboards of every role.
type AdminHandler struct {
	admin      services.AdminService
	dashboards services.DashboardService
	validator  *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin services.AdminService, dashboards services.DashboardService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{admin: admin, dashboards: dashboards, validator: validate}
}

// --- Dashboards ---

// CandidateDashboard godoc
// @Summary      Candidate dashboard
// @Tags         candidate
// @Produce      json
// @Success      200 {object}  dto.Response{data=models.CandidateStats}
// @Router       /candidate/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) CandidateDashboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	stats, err := h.dashboards.CandidateDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "CandidateDashboard")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// CompanyDashboard godoc
// @Summary      Company dashboard
// @Tags         company
// @Produce      json
// @Success      200 {object}  dto.Response{data=models.CompanyStats}
// @Router       /company/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) CompanyDashboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	stats, err := h.dashboards.CompanyDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "CompanyDashboard")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// AdminDashboard godoc
// @Summary      Platform totals
// @Tags         admin
// @Produce      json
// @Success      200 {object}  dto.Response{data=models.AdminStats}
// @Router       /admin/dashboard [get]
// @Security     BearerAuth
func (h *AdminHandler) AdminDashboard(c *gin.Context) {
	stats, err := h.dashboards.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "AdminDashboard")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// --- Moderation ---

// ListCompanies godoc
// @Summary      List companies
// @Tags         admin
// @Produce      json
// @Param        verified query bool false "Filter by verification"
// @Param        page     query int  false "Page" default(1)
// @Param        limit    query int  false "Page size" default(20)
// @Success      200 {object}  dto.Response{data=[]models.Company}
// @Router       /admin/companies [get]
// @Security     BearerAuth
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	var req dto.ListCompaniesRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	companies, page, err := h.admin.ListCompanies(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ListCompanies")
		return
	}
	respondPage(c, companies, page)
}

// VerifyCompany godoc
// @Summary      Verify or unverify a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id   path      string                   true  "Company ID" Format(uuid)
// @Param        body body      dto.VerifyCompanyRequest false "Defaults to verified"
// @Success      200  {object}  dto.Response{data=models.Company}
// @Failure      404  {object}  dto.Response
// @Router       /admin/companies/{id}/verify [patch]
// @Security     BearerAuth
func (h *AdminHandler) VerifyCompany(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	companyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.VerifyCompanyRequest
	if !bindOptionalJSON(c, h.validator, &req) {
		return
	}
	req.CompanyID = companyID
	req.UserID = userID
	req.IP = c.ClientIP()

	company, err := h.admin.VerifyCompany(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "VerifyCompany")
		return
	}
	respondOK(c, http.StatusOK, company)
}

// ChangeCompanyPlan godoc
// @Summary      Change a company's plan
// @Description  Active postings above the new quota stay active.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id   path      string                true "Company ID" Format(uuid)
// @Param        body body      dto.ChangePlanRequest true "Target plan"
// @Success      200  {object}  dto.Response{data=models.Plan}
// @Failure      404  {object}  dto.Response
// @Router       /admin/companies/{id}/plan [put]
// @Security     BearerAuth
func (h *AdminHandler) ChangeCompanyPlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	companyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangePlanRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.CompanyID = companyID
	req.UserID = userID
	req.IP = c.ClientIP()

	plan, err := h.admin.ChangeCompanyPlan(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ChangeCompanyPlan")
		return
	}
	respondOK(c, http.StatusOK, plan)
}

// ListAuditLogs godoc
// @Summary      Browse the audit log
// @Tags         admin
// @Produce      json
// @Param        userId query string false "Actor" Format(uuid)
// @Param        action query string false "Action, e.g. LOGIN"
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object}  dto.Response{data=[]models.AuditLog}
// @Router       /admin/audit-logs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	var req dto.ListAuditLogsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	logs, page, err := h.admin.ListAuditLogs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ListAuditLogs")
		return
	}
	respondPage(c, logs, page)
}
