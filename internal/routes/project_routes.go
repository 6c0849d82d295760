package routes

import (
	"github.com/BivekiGroup/bivekinew-sub000/internal/controllers"
	"github.com/BivekiGroup/bivekinew-sub000/internal/middleware"
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(router *gin.RouterGroup, projectController *controllers.ProjectController) {
	router.Use(middleware.RequireAuth())

	// GET /projects - List projects visible to the requester
	router.GET("", projectController.ListProjects)

	// GET /projects/:id - Single project
	router.GET("/:id", projectController.GetProject)

	// POST /projects - Create project (admin only)
	router.POST("", middleware.RequireRole(models.RoleAdmin), projectController.CreateProject)
}
