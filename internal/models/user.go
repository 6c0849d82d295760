package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Name      *string   `gorm:"type:varchar(255)" json:"name"`
	Role      UserRole  `gorm:"type:user_role;default:'customer'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	OneTimeCodes []OneTimeCode `gorm:"foreignKey:UserID" json:"-"`
	Sessions     []Session     `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
