package routes

import (
	"vagas-rmc/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterCandidateRoutes registers the candidate area. Access is enforced
// by the route guard on the /candidate prefix.
func RegisterCandidateRoutes(
	rg *gin.RouterGroup,
	profileHandler handlers.ProfileHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	favoriteHandler handlers.FavoriteHandlerInterface,
	adminHandler handlers.AdminHandlerInterface,
) {
	candidate := rg.Group("/candidate")
	{
		candidate.GET("/profile", profileHandler.GetCandidateProfile)
		candidate.PATCH("/profile", profileHandler.UpdateCandidateProfile)
		candidate.DELETE("/profile", profileHandler.DeleteCandidateAccount)
		candidate.GET("/applications", applicationHandler.ListCandidateApplications)
		candidate.DELETE("/applications/:id", applicationHandler.CancelApplication)
		candidate.GET("/favorites", favoriteHandler.ListFavorites)
		candidate.GET("/dashboard", adminHandler.CandidateDashboard)
	}
}

// RegisterCompanyRoutes registers the company area, guarded on /company.
func RegisterCompanyRoutes(
	rg *gin.RouterGroup,
	profileHandler handlers.ProfileHandlerInterface,
	jobHandler handlers.JobHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	adminHandler handlers.AdminHandlerInterface,
) {
	company := rg.Group("/company")
	{
		company.GET("/profile", profileHandler.GetCompanyProfile)
		company.PATCH("/profile", profileHandler.UpdateCompanyProfile)
		company.GET("/jobs", jobHandler.ListCompanyJobs)
		company.POST("/jobs", jobHandler.CreateJob)
		company.PATCH("/jobs/:id/status", jobHandler.UpdateJobStatus)
		company.GET("/applications", applicationHandler.ListCompanyApplications)
		company.PATCH("/applications", applicationHandler.UpdateApplicationStatus)
		company.GET("/dashboard", adminHandler.CompanyDashboard)
		company.GET("/candidates", profileHandler.SearchCandidates)
	}
}

// RegisterAdminRoutes registers moderation routes, guarded on /admin.
func RegisterAdminRoutes(rg *gin.RouterGroup, adminHandler handlers.AdminHandlerInterface) {
	admin := rg.Group("/admin")
	{
		admin.GET("/dashboard", adminHandler.AdminDashboard)
		admin.GET("/companies", adminHandler.ListCompanies)
		admin.PATCH("/companies/:id/verify", adminHandler.VerifyCompany)
		admin.PUT("/companies/:id/plan", adminHandler.ChangeCompanyPlan)
		admin.GET("/audit-logs", adminHandler.ListAuditLogs)
	}
}

// RegisterReferenceRoutes registers the public lookups.
func RegisterReferenceRoutes(rg *gin.RouterGroup, referenceHandler handlers.ReferenceHandlerInterface) {
	rg.GET("/cities", referenceHandler.ListCities)
	rg.GET("/areas", referenceHandler.ListAreas)
	rg.GET("/segments", referenceHandler.ListSegments)
	rg.GET("/plans", referenceHandler.ListPlans)
}
