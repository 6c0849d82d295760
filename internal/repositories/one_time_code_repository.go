package repositories

import (
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OneTimeCodeRepository interface {
	Create(code *models.OneTimeCode) error
	// InvalidateOutstanding marks every unused code for the user as used so
	// that at most one redeemable code exists at a time.
	InvalidateOutstanding(userID uuid.UUID) error
	// GetRedeemable returns the newest unused, unexpired code matching the
	// given value, or nil if none exists.
	GetRedeemable(userID uuid.UUID, code string, now time.Time) (*models.OneTimeCode, error)
	// MarkUsed claims the code. It reports false when the code was already
	// claimed or expired by the time of the update, so concurrent redemptions
	// of the same code resolve to exactly one winner.
	MarkUsed(id uuid.UUID, now time.Time) (bool, error)
}

type oneTimeCodeRepository struct {
	db *gorm.DB
}

func NewOneTimeCodeRepository(db *gorm.DB) OneTimeCodeRepository {
	return &oneTimeCodeRepository{db: db}
}

func (r *oneTimeCodeRepository) Create(code *models.OneTimeCode) error {
	return r.db.Create(code).Error
}

func (r *oneTimeCodeRepository) InvalidateOutstanding(userID uuid.UUID) error {
	return r.db.Model(&models.OneTimeCode{}).
		Where("user_id = ? AND used = false", userID).
		UpdateColumn("used", true).Error
}

func (r *oneTimeCodeRepository) GetRedeemable(userID uuid.UUID, code string, now time.Time) (*models.OneTimeCode, error) {
	var otc models.OneTimeCode
	err := r.db.
		Where("user_id = ? AND code = ? AND used = false AND expires_at > ?", userID, code, now).
		Order("created_at DESC").
		First(&otc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &otc, nil
}

func (r *oneTimeCodeRepository) MarkUsed(id uuid.UUID, now time.Time) (bool, error) {
	// Conditional update instead of read-then-write: the row count tells us
	// whether this caller actually claimed the code.
	res := r.db.Model(&models.OneTimeCode{}).
		Where("id = ? AND used = false AND expires_at > ?", id, now).
		UpdateColumn("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
