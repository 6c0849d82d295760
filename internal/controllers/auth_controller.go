package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/BivekiGroup/bivekinew-sub000/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type requestCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RequestCode issues and emails a one-time login code
// POST /auth/request-code
func (ac *AuthController) RequestCode(c *gin.Context) {
	var req requestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "email is required",
		})
		return
	}

	result, err := ac.authService.RequestCode(req.Email, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		slog.Error("request-code failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unable to send login code, please try again later",
		})
		return
	}

	resp := gin.H{
		"success": result.Success,
		"message": result.Message,
	}
	if result.ExpiresAt != nil {
		resp["expires_at"] = result.ExpiresAt
	}
	c.JSON(http.StatusOK, resp)
}

// Login redeems a one-time code and returns a bearer token
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "email and code are required",
		})
		return
	}

	result, err := ac.authService.Login(req.Email, req.Code, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unable to log in, please try again later",
		})
		return
	}

	if !result.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"token":   result.Token,
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
			"role":  result.User.Role,
		},
	})
}

// Logout revokes the presented session token
// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	token := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	}

	if err := ac.authService.Logout(token); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unable to log out, please try again later",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out",
	})
}
