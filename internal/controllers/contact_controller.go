package controllers

import (
	"net/http"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/BivekiGroup/bivekinew-sub000/internal/repositories"
	"github.com/BivekiGroup/bivekinew-sub000/internal/services"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contactRepo repositories.ContactRepository
}

func NewContactController(contactRepo repositories.ContactRepository) *ContactController {
	return &ContactController{contactRepo: contactRepo}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=32"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a message from the public contact form
// POST /contact
func (cc *ContactController) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "name, email and message are required",
		})
		return
	}

	submission := &models.ContactSubmission{
		Name:    req.Name,
		Email:   services.NormalizeEmail(req.Email),
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := cc.contactRepo.Create(submission); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unable to submit message, please try again later",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "message received",
	})
}

// ListSubmissions returns contact-form messages for the admin dashboard
// GET /admin/contact
func (cc *ContactController) ListSubmissions(c *gin.Context) {
	limit, offset := paginationParams(c)

	submissions, total, err := cc.contactRepo.GetAll(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to list submissions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
	})
}
