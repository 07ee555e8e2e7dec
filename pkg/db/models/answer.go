package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is a single option on a question.
type Answer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Text       string    `gorm:"column:text;not null"`
	IsCorrect  bool      `gorm:"column:is_correct;not null;default:false"`
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Answer) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
