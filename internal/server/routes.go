package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

// RegisterRoutes builds the router serving the API under /api.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(s.Config.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.Config.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	r.Use(cors.New(corsConfig))

	jobHandler := handlers.NewJobHandler(s.Jobs)
	applicationHandler := handlers.NewApplicationHandler(s.Applications)
	contactHandler := handlers.NewContactHandler(s.Contact)
	authHandler := handlers.NewAuthHandler(s.Auth)

	requireAuth := middleware.RequireAuth(s.Auth)
	requireAdmin := middleware.CheckRole(models.RoleAdmin)
	limiter := middleware.RateLimiter(uint(s.Config.RateLimitPerSecond))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoute := api.Group("/auth")
		{
			authRoute.POST("/login", limiter, authHandler.Login)
			authRoute.POST("/logout", requireAuth, authHandler.Logout)
		}

		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/categories", jobHandler.ListCategories)
		api.GET("/jobs/:id", jobHandler.GetJob)

		api.POST("/applications", middleware.SizeLimit(services.MaxUploadSize), applicationHandler.SubmitApplication)
		api.POST("/contact", limiter, contactHandler.SubmitContact)

		needAdmin := api.Group("")
		{
			needAdmin.Use(requireAuth, requireAdmin)
			needAdmin.POST("/jobs", jobHandler.CreateJob)
			needAdmin.PUT("/jobs/:id", jobHandler.UpdateJob)
			needAdmin.DELETE("/jobs/:id", jobHandler.DeleteJob)

			needAdmin.GET("/applications", applicationHandler.ListApplications)
			needAdmin.PUT("/applications/:id/status", applicationHandler.UpdateApplicationStatus)

			needAdmin.GET("/contact", contactHandler.ListContactMessages)
			needAdmin.PUT("/contact/:id/read", contactHandler.MarkMessageRead)
		}
	}
	return r
}
