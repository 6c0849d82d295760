package routes

import (
	"github.com/BivekiGroup/bivekinew-sub000/internal/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController) {
	// POST /auth/request-code - Email a one-time login code
	router.POST("/request-code", authController.RequestCode)

	// POST /auth/login - Redeem a code for a bearer token
	router.POST("/login", authController.Login)

	// POST /auth/logout - Revoke the presented token. Deliberately not behind
	// RequireAuth: logging out with a stale token should still succeed.
	router.POST("/logout", authController.Logout)
}
