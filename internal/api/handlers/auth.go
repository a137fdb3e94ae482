package handlers

import (
	"net/http"
	"time"

	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SessionCookie describes the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthHandler serves sign-up, sign-in and the current session.
type AuthHandler struct {
	auth         services.AuthService
	registration services.RegistrationService
	validator    *validator.Validate
	cookie       SessionCookie
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth services.AuthService, registration services.RegistrationService, validate *validator.Validate, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration, validator: validate, cookie: cookie}
}

// RegisterCandidate godoc
// @Summary      Register a candidate
// @Description  Creates the user and candidate profile in one transaction. CPF is optional but must pass the check digits when given.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.RegisterCandidateRequest true "Candidate sign-up"
// @Success      201  {object}  dto.Response{data=models.User}
// @Failure      400  {object}  dto.Response "Validation failed"
// @Failure      409  {object}  dto.Response "Email or CPF already registered"
// @Failure      500  {object}  dto.Response
// @Router       /auth/register/candidate [post]
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req dto.RegisterCandidateRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.IP = c.ClientIP()

	user, err := h.registration.RegisterCandidate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "RegisterCandidate")
		return
	}
	respondOK(c, http.StatusCreated, user)
}

// RegisterCompany godoc
// @Summary      Register a company
// @Description  Creates the user, company, city links and FREE subscription in one transaction.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.RegisterCompanyRequest true "Company sign-up"
// @Success      201  {object}  dto.Response{data=models.User}
// @Failure      400  {object}  dto.Response "Validation failed"
// @Failure      409  {object}  dto.Response "Email or CNPJ already registered"
// @Failure      500  {object}  dto.Response
// @Router       /auth/register/company [post]
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.IP = c.ClientIP()

	user, err := h.registration.RegisterCompany(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "RegisterCompany")
		return
	}
	respondOK(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      Sign in
// @Description  Verifies the credentials and returns a signed session token, also set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Email and password"
// @Success      200  {object}  dto.Response{data=dto.LoginResponse}
// @Failure      400  {object}  dto.Response
// @Failure      401  {object}  dto.Response "Invalid credentials"
// @Failure      404  {object}  dto.Response "User not found or inactive"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	req.IP = c.ClientIP()

	principal, err := h.auth.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Login")
		return
	}

	token, expiresAt, err := h.auth.IssueToken(*principal)
	if err != nil {
		respondError(c, err, "Login: issuing token for user "+principal.UserID.String())
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(time.Until(expiresAt).Seconds()), "/", "", h.cookie.Secure, true)
	respondOK(c, http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: *principal})
}

// Logout godoc
// @Summary      Sign out
// @Description  Clears the session cookie. Tokens are stateless and stay valid until they expire.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	respondMessage(c, "Signed out")
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Response{data=models.User}
// @Failure      401  {object}  dto.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, services.ErrUnauthenticated, "Me")
		return
	}
	user, err := h.auth.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err, "Me")
		return
	}
	respondOK(c, http.StatusOK, user)
}
