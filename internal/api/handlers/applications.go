package handlers

import (
	"net/http"

	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ApplicationHandler serves both sides of the application lifecycle.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  One application per candidate and job. The match score is computed from the candidate's skills.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        slug path      string           true  "Job slug"
// @Param        body body      dto.ApplyRequest false "Optional cover letter"
// @Success      201  {object}  dto.Response{data=models.Application}
// @Failure      401  {object}  dto.Response
// @Failure      403  {object}  dto.Response "Only candidates can apply"
// @Failure      404  {object}  dto.Response "Job not found or not active"
// @Failure      409  {object}  dto.Response "Already applied"
// @Router       /jobs/{slug}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !bindOptionalJSON(c, h.validator, &req) {
		return
	}
	req.Slug = c.Param("slug")
	req.UserID = userID
	req.IP = c.ClientIP()

	app, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Apply")
		return
	}
	respondOK(c, http.StatusCreated, app)
}

// ListCompanyApplications godoc
// @Summary      List applications to own jobs
// @Description  Best matches first.
// @Tags         company
// @Produce      json
// @Param        jobId  query string false "Job ID" Format(uuid)
// @Param        status query string false "Status" Enums(PENDING, VIEWED, SHORTLISTED, INTERVIEW, REJECTED, HIRED)
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object}  dto.Response{data=[]models.CompanyApplication}
// @Failure      400 {object}  dto.Response
// @Router       /company/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListCompanyApplications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ListCompanyApplicationsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	apps, page, err := h.service.ListCompanyApplications(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ListCompanyApplications")
		return
	}
	respondPage(c, apps, page)
}

// UpdateApplicationStatus godoc
// @Summary      Move an application through triage
// @Description  Status only moves forward; REJECTED and HIRED are final. Repeating the current status only updates the feedback.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body body      dto.UpdateApplicationStatusRequest true "Application, status and feedback"
// @Success      200  {object}  dto.Response{data=models.Application}
// @Failure      400  {object}  dto.Response "Invalid transition"
// @Failure      404  {object}  dto.Response
// @Router       /company/applications [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.IP = c.ClientIP()

	app, err := h.service.UpdateApplicationStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "UpdateApplicationStatus")
		return
	}
	respondOK(c, http.StatusOK, app)
}

// ListCandidateApplications godoc
// @Summary      List own applications
// @Tags         candidate
// @Produce      json
// @Param        status query string false "Status" Enums(PENDING, VIEWED, SHORTLISTED, INTERVIEW, REJECTED, HIRED)
// @Param        page   query int    false "Page" default(1)
// @Param        limit  query int    false "Page size" default(10)
// @Success      200 {object}  dto.Response{data=[]models.CandidateApplication}
// @Router       /candidate/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListCandidateApplications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ListCandidateApplicationsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	apps, page, err := h.service.ListCandidateApplications(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ListCandidateApplications")
		return
	}
	respondPage(c, apps, page)
}

// CancelApplication godoc
// @Summary      Withdraw an application
// @Description  Only while the application is still PENDING.
// @Tags         candidate
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {object}  dto.Response
// @Failure      400 {object}  dto.Response "Already being processed"
// @Failure      404 {object}  dto.Response
// @Router       /candidate/applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) CancelApplication(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	applicationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.CancelApplication(c.Request.Context(), userID, applicationID, c.ClientIP()); err != nil {
		respondError(c, err, "CancelApplication")
		return
	}
	respondMessage(c, "Application cancelled")
}
