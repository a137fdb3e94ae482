package handlers

import (
	"net/http"

	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// ListJobs godoc
// @Summary      Search active jobs
// @Description  Public catalog. Featured then highlighted postings come first, then the chosen order.
// @Tags         jobs
// @Produce      json
// @Param        q            query string false "Text in title, description or company name"
// @Param        city         query string false "City slug"
// @Param        area         query string false "Area slug"
// @Param        level        query string false "Level" Enums(INTERN, APPRENTICE, JUNIOR, MID, SENIOR)
// @Param        modality     query string false "Modality" Enums(ONSITE, HYBRID, REMOTE)
// @Param        contractType query string false "Contract type" Enums(CLT, PJ, TEMPORARY, INTERNSHIP, APPRENTICE, FREELANCER)
// @Param        salaryMin    query number false "Minimum salary"
// @Param        salaryMax    query number false "Maximum salary"
// @Param        orderBy      query string false "Order" Enums(recent, salary, applications) default(recent)
// @Param        page         query int    false "Page" default(1)
// @Param        limit        query int    false "Page size (max 50)" default(20)
// @Success      200 {object}  dto.Response{data=[]models.JobSummary}
// @Failure      400 {object}  dto.Response
// @Failure      500 {object}  dto.Response
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}

	jobs, page, err := h.service.ListJobs(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ListJobs")
		return
	}
	respondPage(c, jobs, page)
}

// GetJob godoc
// @Summary      Get an active job by slug
// @Description  Counts a view. Candidates also get hasApplied and isFavorited.
// @Tags         jobs
// @Produce      json
// @Param        slug path      string true "Job slug"
// @Success      200  {object}  dto.Response{data=models.JobDetail}
// @Failure      404  {object}  dto.Response "Job not found"
// @Router       /jobs/{slug} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	viewer, _ := middleware.GetPrincipal(c)

	job, err := h.service.GetJobBySlug(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondError(c, err, "GetJob")
		return
	}
	respondOK(c, http.StatusOK, job)
}

// CreateJob godoc
// @Summary      Publish a job
// @Description  Creates an ACTIVE posting for the company of the session user, subject to the plan quota.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        job body      dto.CreateJobRequest true "Job details"
// @Success      201 {object}  dto.Response{data=models.Job}
// @Failure      400 {object}  dto.Response
// @Failure      403 {object}  dto.Response "Quota exceeded or feature not in plan"
// @Failure      500 {object}  dto.Response
// @Router       /company/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.IP = c.ClientIP()

	job, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "CreateJob")
		return
	}
	respondOK(c, http.StatusCreated, job)
}

// ListCompanyJobs godoc
// @Summary      List own jobs
// @Tags         company
// @Produce      json
// @Success      200 {object}  dto.Response{data=[]models.JobSummary}
// @Failure      401 {object}  dto.Response
// @Router       /company/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListCompanyJobs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobs, err := h.service.ListCompanyJobs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "ListCompanyJobs")
		return
	}
	respondOK(c, http.StatusOK, jobs)
}

// UpdateJobStatus godoc
// @Summary      Pause, resume or close a job
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id     path      string                     true "Job ID" Format(uuid)
// @Param        status body      dto.UpdateJobStatusRequest true "New status"
// @Success      200 {object}  dto.Response{data=models.Job}
// @Failure      400 {object}  dto.Response "Invalid transition"
// @Failure      403 {object}  dto.Response "Quota exceeded on reactivation"
// @Failure      404 {object}  dto.Response
// @Router       /company/jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	jobID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.JobID = jobID
	req.UserID = userID
	req.IP = c.ClientIP()

	job, err := h.service.UpdateJobStatus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "UpdateJobStatus")
		return
	}
	respondOK(c, http.StatusOK, job)
}
