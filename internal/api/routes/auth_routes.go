package routes

import (
	"vagas-rmc/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, sign-in and session routes.
func RegisterAuthRoutes(rg *gin.RouterGroup, authHandler handlers.AuthHandlerInterface, requireAuth gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register/candidate", authHandler.RegisterCandidate)
		auth.POST("/register/company", authHandler.RegisterCompany)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}
}
