package routes

import (
	"vagas-rmc/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers the public catalog and the candidate actions on
// a posting. Listing and detail are open; the session only adds viewer flags.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	favoriteHandler handlers.FavoriteHandlerInterface,
	candidateOnly gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/:slug", jobHandler.GetJob)
		jobs.POST("/:slug/apply", candidateOnly, applicationHandler.Apply)
		jobs.POST("/:slug/favorite", candidateOnly, favoriteHandler.ToggleFavorite)
	}
}
