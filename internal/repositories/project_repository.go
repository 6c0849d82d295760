package repositories

import (
	"errors"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetAll(limit, offset int) ([]models.Project, int64, error)
	GetByCustomer(customerID uuid.UUID, limit, offset int) ([]models.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetAll(limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var count int64

	if err := r.db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, count, nil
}

func (r *projectRepository) GetByCustomer(customerID uuid.UUID, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var count int64

	q := r.db.Model(&models.Project{}).Where("customer_id = ?", customerID)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Limit(limit).Offset(offset).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, count, nil
}
