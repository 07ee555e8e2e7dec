package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question belongs to a quiz and owns its answers.
type Question struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Text      string    `gorm:"column:text;not null"`
	QuizID    uuid.UUID `gorm:"column:quiz_id;type:uuid;not null;index"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (q *Question) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
