package handlers

import (
	"net/http"

	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ProfileHandler serves the own-profile endpoints of candidates and companies.
type ProfileHandler struct {
	profiles  services.ProfileService
	resumes   services.ResumeService
	validator *validator.Validate
	cookie    SessionCookie
}

// NewProfileHandler creates a new ProfileHandler. The session cookie is
// cleared when a candidate deletes the account.
func NewProfileHandler(profiles services.ProfileService, resumes services.ResumeService, validate *validator.Validate, cookie SessionCookie) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, resumes: resumes, validator: validate, cookie: cookie}
}

// --- Candidate ---

// GetCandidateProfile godoc
// @Summary      Own candidate profile
// @Tags         candidate
// @Produce      json
// @Success      200 {object}  dto.Response{data=dto.CandidateProfileResponse}
// @Router       /candidate/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCandidateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetCandidateProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "GetCandidateProfile")
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// UpdateCandidateProfile godoc
// @Summary      Update own candidate profile
// @Description  Partial update. Changing the password requires currentPassword.
// @Tags         candidate
// @Accept       json
// @Produce      json
// @Param        body body      dto.UpdateCandidateProfileRequest true "Fields to change"
// @Success      200  {object}  dto.Response{data=dto.CandidateProfileResponse}
// @Failure      400  {object}  dto.Response
// @Failure      401  {object}  dto.Response "Wrong current password"
// @Router       /candidate/profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateCandidateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.IP = c.ClientIP()

	profile, err := h.profiles.UpdateCandidateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "UpdateCandidateProfile")
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// DeleteCandidateAccount godoc
// @Summary      Delete own account (LGPD)
// @Description  Anonymizes the personal data in place. Applications are kept without personal data.
// @Tags         candidate
// @Accept       json
// @Produce      json
// @Param        body body      dto.DeleteAccountRequest true "Password confirmation and optional reason"
// @Success      200  {object}  dto.Response
// @Failure      401  {object}  dto.Response "Wrong password"
// @Router       /candidate/profile [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeleteCandidateAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.IP = c.ClientIP()

	if err := h.profiles.DeleteCandidateAccount(c.Request.Context(), &req); err != nil {
		respondError(c, err, "DeleteCandidateAccount")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	respondMessage(c, "Account deleted")
}

// --- Company ---

// GetCompanyProfile godoc
// @Summary      Own company profile
// @Tags         company
// @Produce      json
// @Success      200 {object}  dto.Response{data=dto.CompanyProfileResponse}
// @Router       /company/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCompanyProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetCompanyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "GetCompanyProfile")
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// UpdateCompanyProfile godoc
// @Summary      Update own company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body body      dto.UpdateCompanyProfileRequest true "Fields to change"
// @Success      200  {object}  dto.Response{data=dto.CompanyProfileResponse}
// @Failure      400  {object}  dto.Response
// @Router       /company/profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateCompanyProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.UserID = userID
	req.IP = c.ClientIP()

	profile, err := h.profiles.UpdateCompanyProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "UpdateCompanyProfile")
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// SearchCandidates godoc
// @Summary      Search public candidate profiles
// @Description  Requires a plan with résumé search.
// @Tags         company
// @Produce      json
// @Param        q     query string false "Text in name, position or skills"
// @Param        city  query string false "City slug"
// @Param        area  query string false "Area slug"
// @Param        level query string false "Level" Enums(INTERN, APPRENTICE, JUNIOR, MID, SENIOR)
// @Param        page  query int    false "Page" default(1)
// @Param        limit query int    false "Page size" default(20)
// @Success      200 {object}  dto.Response{data=[]models.Candidate}
// @Failure      403 {object}  dto.Response "Plan without résumé search"
// @Router       /company/candidates [get]
// @Security     BearerAuth
func (h *ProfileHandler) SearchCandidates(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ResumeSearchRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	req.UserID = userID

	candidates, page, err := h.resumes.SearchCandidates(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "SearchCandidates")
		return
	}
	respondPage(c, candidates, page)
}
