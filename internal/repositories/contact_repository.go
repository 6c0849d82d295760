package repositories

import (
	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(submission *models.ContactSubmission) error
	GetAll(limit, offset int) ([]models.ContactSubmission, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

func (r *contactRepository) GetAll(limit, offset int) ([]models.ContactSubmission, int64, error) {
	var submissions []models.ContactSubmission
	var count int64

	if err := r.db.Model(&models.ContactSubmission{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, count, nil
}
