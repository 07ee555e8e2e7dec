package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quiz belongs to a company and owns its questions. Structural floors (at
// least two questions, each with at least two answers and one correct one)
// are enforced at the service layer on creation.
type Quiz struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description"`
	Frequency   int        `gorm:"column:frequency;not null;default:0"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	Company     *Company   `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (q *Quiz) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
