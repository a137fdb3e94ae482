package routes

import (
	"log"

	"vagas-rmc/internal/api/handlers"
	"vagas-rmc/internal/api/middleware"
	"vagas-rmc/internal/app"
	"vagas-rmc/internal/auth"
	"vagas-rmc/internal/models"
	"vagas-rmc/internal/services"
	"vagas-rmc/internal/storage/cache"
	"vagas-rmc/internal/storage/postgres"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix is the base path of every JSON endpoint.
const APIPrefix = "/api/v1"

// Handlers groups everything the route registration needs.
type Handlers struct {
	Auth        handlers.AuthHandlerInterface
	Jobs        handlers.JobHandlerInterface
	Application handlers.ApplicationHandlerInterface
	Favorites   handlers.FavoriteHandlerInterface
	Profiles    handlers.ProfileHandlerInterface
	Admin       handlers.AdminHandlerInterface
	Reference   handlers.ReferenceHandlerInterface
}

// RegisterRoutes wires repositories, services and handlers from the
// application container and mounts them on router.
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	tokens := auth.NewTokenManager(app.Config.JWT.Secret, app.Config.JWT.Expiration)
	cookie := handlers.SessionCookie{Name: app.Config.JWT.CookieName, Secure: app.Config.JWT.Secure}

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(app.DBPool)
	candidateRepo := postgres.NewCandidateRepo(app.DBPool)
	companyRepo := postgres.NewCompanyRepo(app.DBPool)
	jobRepo := postgres.NewJobRepo(app.DBPool)
	applicationRepo := postgres.NewApplicationRepo(app.DBPool)
	favoriteRepo := postgres.NewFavoriteRepo(app.DBPool)
	auditRepo := postgres.NewAuditRepo(app.DBPool)
	statsRepo := postgres.NewStatsRepo(app.DBPool)
	planRepo := cache.NewPlanRepo(postgres.NewPlanRepo(app.DBPool), app.RedisClient, app.Config.Redis.TTL)
	refRepo := cache.NewReferenceRepo(postgres.NewReferenceRepo(app.DBPool), app.RedisClient, app.Config.Redis.TTL)

	// --- Services ---
	authService := services.NewAuthService(userRepo, auditRepo, tokens)
	registrationService := services.NewRegistrationService(app.DBPool, userRepo, candidateRepo, companyRepo, planRepo, auditRepo, refRepo)
	jobService := services.NewJobService(app.DBPool, jobRepo, companyRepo, candidateRepo, applicationRepo, favoriteRepo, planRepo, auditRepo, refRepo)
	applicationService := services.NewApplicationService(app.DBPool, applicationRepo, jobRepo, candidateRepo, companyRepo, auditRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, jobRepo, candidateRepo)
	profileService := services.NewProfileService(app.DBPool, userRepo, candidateRepo, companyRepo, planRepo, auditRepo, refRepo)
	resumeService := services.NewResumeService(candidateRepo, companyRepo, planRepo)
	dashboardService := services.NewDashboardService(statsRepo, candidateRepo, companyRepo, planRepo)
	adminService := services.NewAdminService(app.DBPool, companyRepo, planRepo, auditRepo)

	h := Handlers{
		Auth:        handlers.NewAuthHandler(authService, registrationService, app.Validator, cookie),
		Jobs:        handlers.NewJobHandler(jobService, app.Validator),
		Application: handlers.NewApplicationHandler(applicationService, app.Validator),
		Favorites:   handlers.NewFavoriteHandler(favoriteService, app.Validator),
		Profiles:    handlers.NewProfileHandler(profileService, resumeService, app.Validator, cookie),
		Admin:       handlers.NewAdminHandler(adminService, dashboardService, app.Validator),
		Reference:   handlers.NewReferenceHandler(services.NewReferenceService(refRepo), services.NewPlanService(planRepo)),
	}

	// --- Middleware ---
	router.Use(middleware.Authenticate(tokens, app.Config.JWT.CookieName))
	router.Use(middleware.RouteGuard(middleware.DefaultGuardRules(APIPrefix)))

	Mount(router, h)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck(app.DBPool))

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Mount registers every API route on router. Authentication and the route
// guard must already be installed.
func Mount(router *gin.Engine, h Handlers) {
	apiV1 := router.Group(APIPrefix)

	requireAuth := middleware.RequireRole(models.RoleCandidate, models.RoleCompany, models.RoleAdmin)
	candidateOnly := middleware.RequireRole(models.RoleCandidate)

	RegisterAuthRoutes(apiV1, h.Auth, requireAuth)
	RegisterJobRoutes(apiV1, h.Jobs, h.Application, h.Favorites, candidateOnly)
	RegisterCandidateRoutes(apiV1, h.Profiles, h.Application, h.Favorites, h.Admin)
	RegisterCompanyRoutes(apiV1, h.Profiles, h.Jobs, h.Application, h.Admin)
	RegisterAdminRoutes(apiV1, h.Admin)
	RegisterReferenceRoutes(apiV1, h.Reference)
}
