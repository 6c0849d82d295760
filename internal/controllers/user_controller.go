package controllers

import (
	"net/http"
	"strconv"

	"github.com/BivekiGroup/bivekinew-sub000/internal/middleware"
	"github.com/BivekiGroup/bivekinew-sub000/internal/repositories"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userRepo repositories.UserRepository
}

func NewUserController(userRepo repositories.UserRepository) *UserController {
	return &UserController{userRepo: userRepo}
}

// GetProfile returns the authenticated user's profile
// GET /user
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Missing or invalid authentication token",
		})
		return
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to retrieve user profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"is_active": user.IsActive,
		},
	})
}

// ListUsers returns a paginated user list for the admin dashboard
// GET /admin/users
func (uc *UserController) ListUsers(c *gin.Context) {
	limit, offset := paginationParams(c)

	users, total, err := uc.userRepo.GetAll(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to list users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
