package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/pkg/enums"
)

// CompanyMembership is one membership edge. A user holding both the member
// and admin roles in a company has two rows; the unique index makes role
// grants idempotent at the database level.
type CompanyMembership struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID        `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_membership_edge"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_membership_edge"`
	Role      enums.MemberRole `gorm:"column:role;type:text;not null;uniqueIndex:idx_membership_edge"`
	Company   *Company         `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	User      *User            `gorm:"foreignKey:UserID"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (m *CompanyMembership) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
