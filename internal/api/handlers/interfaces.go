package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	RegisterCandidate(c *gin.Context)
	RegisterCompany(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	ListJobs(c *gin.Context)
	GetJob(c *gin.Context)
	CreateJob(c *gin.Context)
	ListCompanyJobs(c *gin.Context)
	UpdateJobStatus(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	ListCompanyApplications(c *gin.Context)
	UpdateApplicationStatus(c *gin.Context)
	ListCandidateApplications(c *gin.Context)
	CancelApplication(c *gin.Context)
}

// FavoriteHandlerInterface defines the methods needed by the favorite routes.
type FavoriteHandlerInterface interface {
	ToggleFavorite(c *gin.Context)
	ListFavorites(c *gin.Context)
}

// ProfileHandlerInterface defines the methods needed by the profile routes.
type ProfileHandlerInterface interface {
	GetCandidateProfile(c *gin.Context)
	UpdateCandidateProfile(c *gin.Context)
	DeleteCandidateAccount(c *gin.Context)
	GetCompanyProfile(c *gin.Context)
	UpdateCompanyProfile(c *gin.Context)
	SearchCandidates(c *gin.Context)
}

// AdminHandlerInterface defines the methods needed by the dashboard and admin routes.
type AdminHandlerInterface interface {
	CandidateDashboard(c *gin.Context)
	CompanyDashboard(c *gin.Context)
	AdminDashboard(c *gin.Context)
	ListCompanies(c *gin.Context)
	VerifyCompany(c *gin.Context)
	ChangeCompanyPlan(c *gin.Context)
	ListAuditLogs(c *gin.Context)
}

// ReferenceHandlerInterface defines the methods needed by the lookup routes.
type ReferenceHandlerInterface interface {
	ListCities(c *gin.Context)
	ListAreas(c *gin.Context)
	ListSegments(c *gin.Context)
	ListPlans(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var (
	_ AuthHandlerInterface        = (*AuthHandler)(nil)
	_ JobHandlerInterface         = (*JobHandler)(nil)
	_ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
	_ FavoriteHandlerInterface    = (*FavoriteHandler)(nil)
	_ ProfileHandlerInterface     = (*ProfileHandler)(nil)
	_ AdminHandlerInterface       = (*AdminHandler)(nil)
	_ ReferenceHandlerInterface   = (*ReferenceHandler)(nil)
)
