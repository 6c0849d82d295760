package controllers

import (
	"net/http"

	"github.com/BivekiGroup/bivekinew-sub000/internal/middleware"
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/BivekiGroup/bivekinew-sub000/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectController(projectRepo repositories.ProjectRepository) *ProjectController {
	return &ProjectController{projectRepo: projectRepo}
}

type createProjectRequest struct {
	CustomerID  string `json:"customer_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

// CreateProject creates a project for a customer
// POST /projects (admin only)
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}

	project := &models.Project{
		CustomerID:  customerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectStatusNew,
	}
	if err := pc.projectRepo.Create(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to create project",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// ListProjects lists projects visible to the requester. Customers see their
// own projects, developers and admins see everything.
// GET /projects
func (pc *ProjectController) ListProjects(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	role, roleOK := middleware.CurrentUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}

	limit, offset := paginationParams(c)

	var (
		projects []models.Project
		total    int64
		err      error
	)
	if role == models.RoleCustomer {
		projects, total, err = pc.projectRepo.GetByCustomer(userID, limit, offset)
	} else {
		projects, total, err = pc.projectRepo.GetAll(limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to list projects",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    total,
	})
}

// GetProject returns a single project if the requester may see it
// GET /projects/:id
func (pc *ProjectController) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := pc.projectRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to retrieve project",
		})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "Project not found",
		})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	if role == models.RoleCustomer && project.CustomerID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You don't have permission to access this resource",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}
