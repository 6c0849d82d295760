package repositories

import (
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *models.Session) error
	// UpdateToken stores the final token string once the JWT carrying the
	// session id has been minted.
	UpdateToken(id uuid.UUID, token string) error
	// GetLiveByToken returns the session holding the token if it has not
	// expired by now, or nil.
	GetLiveByToken(token string, now time.Time) (*models.Session, error)
	DeleteByToken(token string) error
	// DeleteExpired removes the user's expired sessions. Best-effort cleanup
	// on the login path.
	DeleteExpired(userID uuid.UUID, now time.Time) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) UpdateToken(id uuid.UUID, token string) error {
	return r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("token", token).Error
}

func (r *sessionRepository) GetLiveByToken(token string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.
		Where("token = ? AND expires_at > ?", token, now).
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) DeleteExpired(userID uuid.UUID, now time.Time) error {
	return r.db.Delete(&models.Session{}, "user_id = ? AND expires_at <= ?", userID, now).Error
}
