package repositories

import (
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	// GetActiveByEmail matches case-insensitively (email is citext) and only
	// returns users whose is_active flag is set.
	GetActiveByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	GetAll(limit, offset int) ([]models.User, int64, error)
	ExistsByEmail(email string) (bool, error)
}
