package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OneTimeCode is a single emailed login challenge. At most one unused code
// exists per user; redemption flips Used exactly once.
type OneTimeCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	Used      bool      `gorm:"not null;default:false"`
	IPAddress string    `gorm:"type:varchar(45)"`
	UserAgent string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null;index"`
}

func (OneTimeCode) TableName() string {
	return "one_time_codes"
}

func (c *OneTimeCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
