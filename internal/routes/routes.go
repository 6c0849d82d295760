package routes

import (
	"github.com/BivekiGroup/bivekinew-sub000/internal/controllers"
	"github.com/BivekiGroup/bivekinew-sub000/internal/middleware"
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all application routes.
func SetupRoutes(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	projectController *controllers.ProjectController,
	contactController *controllers.ContactController,
	authenticate gin.HandlerFunc,
) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Every route runs through authenticate; anonymous requests pass and the
	// guards on each group decide what is reachable.
	api := router.Group("/")
	api.Use(authenticate)

	// Auth routes: /auth/*
	authGroup := api.Group("/auth")
	RegisterAuthRoutes(authGroup, authController)

	// Public contact form: /contact
	api.POST("/contact", contactController.SubmitContact)

	// User profile route: /user
	userGroup := api.Group("/user")
	userGroup.Use(middleware.RequireAuth())
	{
		userGroup.GET("", userController.GetProfile)
	}

	// Project routes: /projects/*
	projectGroup := api.Group("/projects")
	RegisterProjectRoutes(projectGroup, projectController)

	// Admin dashboard routes: /admin/*
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.GET("/users", userController.ListUsers)
		adminGroup.GET("/contact", contactController.ListSubmissions)
	}
}
