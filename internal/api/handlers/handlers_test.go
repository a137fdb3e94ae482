package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vagas-rmc/internal/api/handlers"
	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/mocks"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/transport/dto"
	"vagas-rmc/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Helper Functions for Setup ---

var testCookie = handlers.SessionCookie{Name: "session"}

// newRouter returns an engine that runs every request as principal, when set.
func newRouter(principal *models.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if principal != nil {
			middleware.SetPrincipal(c, principal)
		}
		c.Next()
	})
	return router
}

func candidatePrincipal() *models.Principal {
	return &models.Principal{UserID: uuid.New(), Email: "ana@test.com", Role: models.RoleCandidate}
}

func companyPrincipal() *models.Principal {
	return &models.Principal{UserID: uuid.New(), Email: "rh@acme.com.br", Role: models.RoleCompany}
}

func perform(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

// --- Auth ---

func setupAuthRouter(principal *models.Principal) (*gin.Engine, *mocks.AuthService, *mocks.RegistrationService) {
	authService := new(mocks.AuthService)
	registration := new(mocks.RegistrationService)
	handler := handlers.NewAuthHandler(authService, registration, validation.New(), testCookie)

	router := newRouter(principal)
	router.POST("/auth/register/candidate", handler.RegisterCandidate)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/me", handler.Me)
	return router, authService, registration
}

func validCandidateBody() map[string]interface{} {
	return map[string]interface{}{
		"fullName":        "Ana Souza",
		"email":           "ana@test.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"cpf":             "529.982.247-25",
		"phone":           "19999990000",
		"residenceCityId": uuid.New().String(),
		"acceptTerms":     true,
	}
}

func TestAuthHandler_RegisterCandidate(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router, _, registration := setupAuthRouter(nil)
		user := &models.User{ID: uuid.New(), Email: "ana@test.com", Role: models.RoleCandidate, IsActive: true}
		registration.On("RegisterCandidate", mock.Anything, mock.MatchedBy(func(req *dto.RegisterCandidateRequest) bool {
			return req.Email == "ana@test.com" && req.CPF == "529.982.247-25" && req.AcceptTerms
		})).Return(user, nil).Once()

		w := perform(router, http.MethodPost, "/auth/register/candidate", validCandidateBody())

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, user.ID.String(), data["id"])
		assert.NotContains(t, w.Body.String(), "password")
		registration.AssertExpectations(t)
	})

	t.Run("Validation details use JSON names", func(t *testing.T) {
		router, _, registration := setupAuthRouter(nil)
		body := validCandidateBody()
		body["confirmPassword"] = "different"
		body["cpf"] = "111.111.111-11"
		body["acceptTerms"] = false

		w := perform(router, http.MethodPost, "/auth/register/candidate", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, handlers.CodeValidation, resp.Code)
		assert.Equal(t, "Invalid CPF", resp.Details["cpf"])
		assert.Contains(t, resp.Details, "confirmPassword")
		assert.Contains(t, resp.Details, "acceptTerms")
		registration.AssertNotCalled(t, "RegisterCandidate", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		router, _, _ := setupAuthRouter(nil)

		w := perform(router, http.MethodPost, "/auth/register/candidate", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handlers.CodeValidation, decodeResponse(t, w).Code)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		router, _, registration := setupAuthRouter(nil)
		registration.On("RegisterCandidate", mock.Anything, mock.Anything).Return(nil, services.ErrDuplicateEmail).Once()

		w := perform(router, http.MethodPost, "/auth/register/candidate", validCandidateBody())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, handlers.CodeDuplicateEmail, decodeResponse(t, w).Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Sets session cookie", func(t *testing.T) {
		router, authService, _ := setupAuthRouter(nil)
		principal := candidatePrincipal()
		expiresAt := time.Now().Add(time.Hour)
		authService.On("Authenticate", mock.Anything, mock.MatchedBy(func(req *dto.LoginRequest) bool {
			return req.Email == principal.Email && req.Password == "secret123"
		})).Return(principal, nil).Once()
		authService.On("IssueToken", *principal).Return("signed-token", expiresAt, nil).Once()

		w := perform(router, http.MethodPost, "/auth/login", map[string]string{"email": principal.Email, "password": "secret123"})

		assert.Equal(t, http.StatusOK, w.Code)
		cookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, cookie, "session=signed-token")
		assert.Contains(t, cookie, "HttpOnly")
		assert.Contains(t, cookie, "SameSite=Lax")

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "signed-token", data["token"])
		assert.Equal(t, "CANDIDATE", data["user"].(map[string]interface{})["role"])
		authService.AssertExpectations(t)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		router, authService, _ := setupAuthRouter(nil)
		authService.On("Authenticate", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials).Once()

		w := perform(router, http.MethodPost, "/auth/login", map[string]string{"email": "ana@test.com", "password": "nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, handlers.CodeInvalidCredentials, decodeResponse(t, w).Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
		authService.AssertNotCalled(t, "IssueToken", mock.Anything)
	})

	t.Run("Unknown user", func(t *testing.T) {
		router, authService, _ := setupAuthRouter(nil)
		authService.On("Authenticate", mock.Anything, mock.Anything).Return(nil, services.ErrNotFound).Once()

		w := perform(router, http.MethodPost, "/auth/login", map[string]string{"email": "ghost@test.com", "password": "secret123"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Signing failure is internal", func(t *testing.T) {
		router, authService, _ := setupAuthRouter(nil)
		principal := candidatePrincipal()
		authService.On("Authenticate", mock.Anything, mock.Anything).Return(principal, nil).Once()
		authService.On("IssueToken", *principal).Return("", time.Time{}, errors.New("hmac unavailable")).Once()

		w := perform(router, http.MethodPost, "/auth/login", map[string]string{"email": principal.Email, "password": "secret123"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, handlers.CodeInternal, resp.Code)
		assert.NotContains(t, w.Body.String(), "hmac")
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	t.Run("Logout clears cookie", func(t *testing.T) {
		router, _, _ := setupAuthRouter(nil)

		w := perform(router, http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "session=;")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("Me without session", func(t *testing.T) {
		router, _, _ := setupAuthRouter(nil)

		w := perform(router, http.MethodGet, "/auth/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, handlers.CodeUnauthenticated, decodeResponse(t, w).Code)
	})

	t.Run("Me", func(t *testing.T) {
		principal := candidatePrincipal()
		router, authService, _ := setupAuthRouter(principal)
		authService.On("Me", mock.Anything, principal.UserID).
			Return(&models.User{ID: principal.UserID, Email: principal.Email, Role: principal.Role}, nil).Once()

		w := perform(router, http.MethodGet, "/auth/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, principal.Email, decodeResponse(t, w).Data.(map[string]interface{})["email"])
	})
}

// --- Jobs ---

func setupJobRouter(principal *models.Principal) (*gin.Engine, *mocks.JobService) {
	jobService := new(mocks.JobService)
	handler := handlers.NewJobHandler(jobService, validation.New())

	router := newRouter(principal)
	router.GET("/jobs", handler.ListJobs)
	router.GET("/jobs/:slug", handler.GetJob)
	router.POST("/company/jobs", handler.CreateJob)
	router.PATCH("/company/jobs/:id/status", handler.UpdateJobStatus)
	return router, jobService
}

func validJobBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Desenvolvedor Go",
		"description":  strings.Repeat("Vaga para desenvolvimento de APIs. ", 3),
		"areaId":       uuid.New().String(),
		"level":        "JUNIOR",
		"modality":     "HYBRID",
		"contractType": "CLT",
		"cityIds":      []string{uuid.New().String()},
	}
}

func TestJobHandler_ListJobs(t *testing.T) {
	t.Run("Paged envelope", func(t *testing.T) {
		router, jobService := setupJobRouter(nil)
		jobs := []models.JobSummary{{Job: models.Job{ID: uuid.New(), Title: "Desenvolvedor Go", Slug: "desenvolvedor-go-abc123"}}}
		jobService.On("ListJobs", mock.Anything, mock.MatchedBy(func(req *dto.ListJobsRequest) bool {
			return req.Page == 2 && req.Limit == 5 && req.Level == "JUNIOR" && req.Q == "go"
		})).Return(jobs, models.NewPagination(2, 5, 12), nil).Once()

		w := perform(router, http.MethodGet, "/jobs?page=2&limit=5&level=JUNIOR&q=go", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Pagination)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, 12, resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Len(t, resp.Data, 1)
		jobService.AssertExpectations(t)
	})

	t.Run("Unknown level", func(t *testing.T) {
		router, jobService := setupJobRouter(nil)

		w := perform(router, http.MethodGet, "/jobs?level=CEO", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeResponse(t, w).Details, "level")
		jobService.AssertNotCalled(t, "ListJobs", mock.Anything, mock.Anything)
	})

	t.Run("Service failure", func(t *testing.T) {
		router, jobService := setupJobRouter(nil)
		jobService.On("ListJobs", mock.Anything, mock.Anything).Return(nil, models.Pagination{}, errors.New("connection reset")).Once()

		w := perform(router, http.MethodGet, "/jobs", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeResponse(t, w).Error)
	})
}

func TestJobHandler_GetJob(t *testing.T) {
	t.Run("Passes the viewer", func(t *testing.T) {
		viewer := candidatePrincipal()
		router, jobService := setupJobRouter(viewer)
		detail := &models.JobDetail{}
		jobService.On("GetJobBySlug", mock.Anything, "desenvolvedor-go-abc123", viewer).Return(detail, nil).Once()

		w := perform(router, http.MethodGet, "/jobs/desenvolvedor-go-abc123", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		jobService.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		router, jobService := setupJobRouter(nil)
		jobService.On("GetJobBySlug", mock.Anything, "missing", (*models.Principal)(nil)).Return(nil, services.ErrNotFound).Once()

		w := perform(router, http.MethodGet, "/jobs/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, handlers.CodeNotFound, decodeResponse(t, w).Code)
	})
}

func TestJobHandler_CreateJob(t *testing.T) {
	tests := []struct {
		name       string
		principal  *models.Principal
		body       map[string]interface{}
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "Created", principal: companyPrincipal(), body: validJobBody(), wantStatus: http.StatusCreated},
		{name: "No session", principal: nil, body: validJobBody(), wantStatus: http.StatusUnauthorized, wantCode: handlers.CodeUnauthenticated},
		{name: "Quota exceeded", principal: companyPrincipal(), body: validJobBody(), serviceErr: services.ErrQuotaExceeded, wantStatus: http.StatusForbidden, wantCode: handlers.CodeQuotaExceeded},
		{name: "Not a company", principal: companyPrincipal(), body: validJobBody(), serviceErr: services.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: handlers.CodeForbidden},
		{
			name:       "Short description",
			principal:  companyPrincipal(),
			body:       func() map[string]interface{} { b := validJobBody(); b["description"] = "curta"; return b }(),
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeValidation,
		},
		{
			name:       "Inverted salary range",
			principal:  companyPrincipal(),
			body:       validJobBody(),
			serviceErr: &services.FieldError{Field: "salaryMax", Message: "must be greater than or equal to salaryMin"},
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jobService := setupJobRouter(tt.principal)
			if tt.principal != nil {
				var result *models.Job
				if tt.serviceErr == nil {
					result = &models.Job{ID: uuid.New(), Slug: "desenvolvedor-go-abc123", Status: models.JobStatusActive}
				}
				jobService.On("CreateJob", mock.Anything, mock.MatchedBy(func(req *dto.CreateJobRequest) bool {
					return req.UserID == tt.principal.UserID
				})).Return(result, tt.serviceErr).Maybe()
			}

			w := perform(router, http.MethodPost, "/company/jobs", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, resp.Code)
			} else {
				assert.True(t, resp.Success)
			}
			var fieldErr *services.FieldError
			if errors.As(tt.serviceErr, &fieldErr) {
				assert.Equal(t, fieldErr.Message, resp.Details[fieldErr.Field])
			}
		})
	}
}

func TestJobHandler_UpdateJobStatus(t *testing.T) {
	t.Run("Bad ID", func(t *testing.T) {
		router, _ := setupJobRouter(companyPrincipal())

		w := perform(router, http.MethodPatch, "/company/jobs/not-a-uuid/status", map[string]string{"status": "PAUSED"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeResponse(t, w).Details, "id")
	})

	t.Run("Invalid transition", func(t *testing.T) {
		principal := companyPrincipal()
		router, jobService := setupJobRouter(principal)
		jobID := uuid.New()
		jobService.On("UpdateJobStatus", mock.Anything, mock.MatchedBy(func(req *dto.UpdateJobStatusRequest) bool {
			return req.JobID == jobID && req.Status == models.JobStatusActive
		})).Return(nil, services.ErrInvalidTransition).Once()

		w := perform(router, http.MethodPatch, "/company/jobs/"+jobID.String()+"/status", map[string]string{"status": "ACTIVE"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handlers.CodeInvalidTransition, decodeResponse(t, w).Code)
	})
}

// --- Applications and favorites ---

func TestApplicationHandler_Apply(t *testing.T) {
	setup := func(principal *models.Principal) (*gin.Engine, *mocks.ApplicationService) {
		appService := new(mocks.ApplicationService)
		handler := handlers.NewApplicationHandler(appService, validation.New())
		router := newRouter(principal)
		router.POST("/jobs/:slug/apply", handler.Apply)
		router.DELETE("/candidate/applications/:id", handler.CancelApplication)
		return router, appService
	}

	t.Run("Empty body", func(t *testing.T) {
		principal := candidatePrincipal()
		router, appService := setup(principal)
		appService.On("Apply", mock.Anything, mock.MatchedBy(func(req *dto.ApplyRequest) bool {
			return req.Slug == "desenvolvedor-go-abc123" && req.UserID == principal.UserID && req.CoverLetter == nil
		})).Return(&models.Application{ID: uuid.New(), Status: models.ApplicationStatusPending}, nil).Once()

		w := perform(router, http.MethodPost, "/jobs/desenvolvedor-go-abc123/apply", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		appService.AssertExpectations(t)
	})

	t.Run("Already applied", func(t *testing.T) {
		router, appService := setup(candidatePrincipal())
		appService.On("Apply", mock.Anything, mock.Anything).Return(nil, services.ErrConflict).Once()

		w := perform(router, http.MethodPost, "/jobs/desenvolvedor-go-abc123/apply", map[string]string{"coverLetter": "Olá"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, handlers.CodeConflict, decodeResponse(t, w).Code)
	})

	t.Run("Cancel", func(t *testing.T) {
		principal := candidatePrincipal()
		router, appService := setup(principal)
		appID := uuid.New()
		appService.On("CancelApplication", mock.Anything, principal.UserID, appID, mock.Anything).Return(nil).Once()

		w := perform(router, http.MethodDelete, "/candidate/applications/"+appID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Application cancelled", decodeResponse(t, w).Message)
	})

	t.Run("Cancel after triage", func(t *testing.T) {
		router, appService := setup(candidatePrincipal())
		appService.On("CancelApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(services.ErrInvalidState).Once()

		w := perform(router, http.MethodDelete, "/candidate/applications/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handlers.CodeInvalidState, decodeResponse(t, w).Code)
	})
}

func TestFavoriteHandler(t *testing.T) {
	principal := candidatePrincipal()
	favService := new(mocks.FavoriteService)
	handler := handlers.NewFavoriteHandler(favService, validation.New())
	router := newRouter(principal)
	router.POST("/jobs/:slug/favorite", handler.ToggleFavorite)
	router.GET("/candidate/favorites", handler.ListFavorites)

	t.Run("Toggle", func(t *testing.T) {
		favService.On("ToggleFavorite", mock.Anything, principal.UserID, "added").Return(true, nil).Once()
		favService.On("ToggleFavorite", mock.Anything, principal.UserID, "removed").Return(false, nil).Once()

		w := perform(router, http.MethodPost, "/jobs/added/favorite", nil)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, true, data["favorited"])
		assert.Equal(t, "Job added to favorites", data["message"])

		w = perform(router, http.MethodPost, "/jobs/removed/favorite", nil)
		data = decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, false, data["favorited"])
		assert.Equal(t, "Job removed from favorites", data["message"])
	})

	t.Run("List rejects negative page", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/candidate/favorites?page=-1", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List", func(t *testing.T) {
		favService.On("ListFavorites", mock.Anything, principal.UserID, dto.PageQuery{Page: 1, Limit: 10}).
			Return([]models.FavoriteJob{}, models.NewPagination(1, 10, 0), nil).Once()

		w := perform(router, http.MethodGet, "/candidate/favorites?page=1&limit=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, decodeResponse(t, w).Pagination.Total)
	})

	favService.AssertExpectations(t)
}
