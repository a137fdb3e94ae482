package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vagas-rmc/internal/api/handlers"
	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/api/routes"
	"vagas-rmc/internal/auth"
	"vagas-rmc/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockHandler implements every handler interface and records the route that reached it.
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) serve(c *gin.Context) {
	m.Called(c.Request.Method + " " + c.FullPath())
	c.Status(http.StatusNoContent)
}

func (m *MockHandler) RegisterCandidate(c *gin.Context)         { m.serve(c) }
func (m *MockHandler) RegisterCompany(c *gin.Context)           { m.serve(c) }
func (m *MockHandler) Login(c *gin.Context)                     { m.serve(c) }
func (m *MockHandler) Logout(c *gin.Context)                    { m.serve(c) }
func (m *MockHandler) Me(c *gin.Context)                        { m.serve(c) }
func (m *MockHandler) ListJobs(c *gin.Context)                  { m.serve(c) }
func (m *MockHandler) GetJob(c *gin.Context)                    { m.serve(c) }
func (m *MockHandler) CreateJob(c *gin.Context)                 { m.serve(c) }
func (m *MockHandler) ListCompanyJobs(c *gin.Context)           { m.serve(c) }
func (m *MockHandler) UpdateJobStatus(c *gin.Context)           { m.serve(c) }
func (m *MockHandler) Apply(c *gin.Context)                     { m.serve(c) }
func (m *MockHandler) ListCompanyApplications(c *gin.Context)   { m.serve(c) }
func (m *MockHandler) UpdateApplicationStatus(c *gin.Context)   { m.serve(c) }
func (m *MockHandler) ListCandidateApplications(c *gin.Context) { m.serve(c) }
func (m *MockHandler) CancelApplication(c *gin.Context)         { m.serve(c) }
func (m *MockHandler) ToggleFavorite(c *gin.Context)            { m.serve(c) }
func (m *MockHandler) ListFavorites(c *gin.Context)             { m.serve(c) }
func (m *MockHandler) GetCandidateProfile(c *gin.Context)       { m.serve(c) }
func (m *MockHandler) UpdateCandidateProfile(c *gin.Context)    { m.serve(c) }
func (m *MockHandler) DeleteCandidateAccount(c *gin.Context)    { m.serve(c) }
func (m *MockHandler) GetCompanyProfile(c *gin.Context)         { m.serve(c) }
func (m *MockHandler) UpdateCompanyProfile(c *gin.Context)      { m.serve(c) }
func (m *MockHandler) SearchCandidates(c *gin.Context)          { m.serve(c) }
func (m *MockHandler) CandidateDashboard(c *gin.Context)        { m.serve(c) }
func (m *MockHandler) CompanyDashboard(c *gin.Context)          { m.serve(c) }
func (m *MockHandler) AdminDashboard(c *gin.Context)            { m.serve(c) }
func (m *MockHandler) ListCompanies(c *gin.Context)             { m.serve(c) }
func (m *MockHandler) VerifyCompany(c *gin.Context)             { m.serve(c) }
func (m *MockHandler) ChangeCompanyPlan(c *gin.Context)         { m.serve(c) }
func (m *MockHandler) ListAuditLogs(c *gin.Context)             { m.serve(c) }
func (m *MockHandler) ListCities(c *gin.Context)                { m.serve(c) }
func (m *MockHandler) ListAreas(c *gin.Context)                 { m.serve(c) }
func (m *MockHandler) ListSegments(c *gin.Context)              { m.serve(c) }
func (m *MockHandler) ListPlans(c *gin.Context)                 { m.serve(c) }

func mockHandlers(m *MockHandler) routes.Handlers {
	return routes.Handlers{
		Auth:        m,
		Jobs:        m,
		Application: m,
		Favorites:   m,
		Profiles:    m,
		Admin:       m,
		Reference:   m,
	}
}

// Ensure MockHandler implements the interfaces (compile-time check)
var (
	_ handlers.AuthHandlerInterface        = (*MockHandler)(nil)
	_ handlers.ReferenceHandlerInterface   = (*MockHandler)(nil)
	_ handlers.ApplicationHandlerInterface = (*MockHandler)(nil)
)

func TestMount(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Act
	routes.Mount(router, mockHandlers(new(MockHandler)))

	// Assert
	expectedRoutes := []struct {
		Method string
		Path   string
	}{
		{http.MethodPost, "/api/v1/auth/register/candidate"},
		{http.MethodPost, "/api/v1/auth/register/company"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/jobs"},
		{http.MethodGet, "/api/v1/jobs/:slug"},
		{http.MethodPost, "/api/v1/jobs/:slug/apply"},
		{http.MethodPost, "/api/v1/jobs/:slug/favorite"},
		{http.MethodGet, "/api/v1/candidate/profile"},
		{http.MethodPatch, "/api/v1/candidate/profile"},
		{http.MethodDelete, "/api/v1/candidate/profile"},
		{http.MethodGet, "/api/v1/candidate/applications"},
		{http.MethodDelete, "/api/v1/candidate/applications/:id"},
		{http.MethodGet, "/api/v1/candidate/favorites"},
		{http.MethodGet, "/api/v1/candidate/dashboard"},
		{http.MethodGet, "/api/v1/company/profile"},
		{http.MethodPatch, "/api/v1/company/profile"},
		{http.MethodGet, "/api/v1/company/jobs"},
		{http.MethodPost, "/api/v1/company/jobs"},
		{http.MethodPatch, "/api/v1/company/jobs/:id/status"},
		{http.MethodGet, "/api/v1/company/applications"},
		{http.MethodPatch, "/api/v1/company/applications"},
		{http.MethodGet, "/api/v1/company/dashboard"},
		{http.MethodGet, "/api/v1/company/candidates"},
		{http.MethodGet, "/api/v1/admin/dashboard"},
		{http.MethodGet, "/api/v1/admin/companies"},
		{http.MethodPatch, "/api/v1/admin/companies/:id/verify"},
		{http.MethodPut, "/api/v1/admin/companies/:id/plan"},
		{http.MethodGet, "/api/v1/admin/audit-logs"},
		{http.MethodGet, "/api/v1/cities"},
		{http.MethodGet, "/api/v1/areas"},
		{http.MethodGet, "/api/v1/segments"},
		{http.MethodGet, "/api/v1/plans"},
	}

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, expected := range expectedRoutes {
		assert.True(t, registered[expected.Method+" "+expected.Path], "Route %s %s should be registered", expected.Method, expected.Path)
	}
	assert.Len(t, router.Routes(), len(expectedRoutes), "No unexpected routes should be registered")
}

// setupGuardedRouter mounts the routes behind the same middleware chain the server installs.
func setupGuardedRouter(tokens *auth.TokenManager, m *MockHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Authenticate(tokens, "session"))
	router.Use(middleware.RouteGuard(middleware.DefaultGuardRules(routes.APIPrefix)))
	routes.Mount(router, mockHandlers(m))
	return router
}

func TestMount_AccessControl(t *testing.T) {
	tokens := auth.NewTokenManager("routes-test-secret", time.Hour)

	tokenFor := func(role models.Role) string {
		token, _, err := tokens.Issue(models.Principal{UserID: uuid.New(), Email: "user@test.com", Role: role})
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name       string
		method     string
		path       string
		role       models.Role
		wantStatus int
		wantRoute  string
	}{
		{"Public catalog", http.MethodGet, "/api/v1/jobs", "", http.StatusNoContent, "GET /api/v1/jobs"},
		{"Public job detail", http.MethodGet, "/api/v1/jobs/dev-go", "", http.StatusNoContent, "GET /api/v1/jobs/:slug"},
		{"Apply anonymously", http.MethodPost, "/api/v1/jobs/dev-go/apply", "", http.StatusUnauthorized, ""},
		{"Apply as company", http.MethodPost, "/api/v1/jobs/dev-go/apply", models.RoleCompany, http.StatusForbidden, ""},
		{"Apply as candidate", http.MethodPost, "/api/v1/jobs/dev-go/apply", models.RoleCandidate, http.StatusNoContent, "POST /api/v1/jobs/:slug/apply"},
		{"Favorite as candidate", http.MethodPost, "/api/v1/jobs/dev-go/favorite", models.RoleCandidate, http.StatusNoContent, "POST /api/v1/jobs/:slug/favorite"},
		{"Me anonymously", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized, ""},
		{"Me as admin", http.MethodGet, "/api/v1/auth/me", models.RoleAdmin, http.StatusNoContent, "GET /api/v1/auth/me"},
		{"Company creates job", http.MethodPost, "/api/v1/company/jobs", models.RoleCompany, http.StatusNoContent, "POST /api/v1/company/jobs"},
		{"Candidate creates job", http.MethodPost, "/api/v1/company/jobs", models.RoleCandidate, http.StatusForbidden, ""},
		{"Admin reads audit log", http.MethodGet, "/api/v1/admin/audit-logs", models.RoleAdmin, http.StatusNoContent, "GET /api/v1/admin/audit-logs"},
		{"Company reads audit log", http.MethodGet, "/api/v1/admin/audit-logs", models.RoleCompany, http.StatusForbidden, ""},
		{"Public plans", http.MethodGet, "/api/v1/plans", "", http.StatusNoContent, "GET /api/v1/plans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockHandler)
			if tt.wantRoute != "" {
				m.On("serve", tt.wantRoute).Once()
			}
			router := setupGuardedRouter(tokens, m)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+tokenFor(tt.role))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			m.AssertExpectations(t)
			if tt.wantRoute == "" {
				m.AssertNotCalled(t, "serve", mock.Anything)
			}
		})
	}
}
