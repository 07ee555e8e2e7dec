package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultUserStatus tags freshly registered accounts.
const DefaultUserStatus = "registered"

// User represents the canonical identity entity. Accounts are created on
// sign-up or provisioned on first external-identity login.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Username     string         `gorm:"column:username;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Phones       pq.StringArray `gorm:"column:phones;type:text[]"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	IsSuperuser  bool           `gorm:"column:is_superuser;not null;default:false"`
	Status       string         `gorm:"column:status;not null;default:registered"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so the model works on both the
// postgres and sqlite paths.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = DefaultUserStatus
	}
	return nil
}
