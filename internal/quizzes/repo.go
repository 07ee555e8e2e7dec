package quizzes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// Repo persists quizzes with their question and answer trees.
type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

// Create inserts the quiz with its nested questions and answers in one
// transaction.
func (r *Repo) Create(ctx context.Context, quiz *models.Quiz) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "creating quiz")
	}
	return nil
}

// FindByID loads the quiz tree.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.client.DB().WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "quiz not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading quiz")
	}
	return &quiz, nil
}

// ListByCompany returns the company's quizzes without their trees.
func (r *Repo) ListByCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.client.DB().WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&quizzes).Error
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing quizzes")
	}
	return quizzes, nil
}

// Update saves quiz metadata only; the question tree has its own paths.
func (r *Repo) Update(ctx context.Context, quiz *models.Quiz) error {
	err := r.client.DB().WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]any{
			"name":        quiz.Name,
			"description": quiz.Description,
			"frequency":   quiz.Frequency,
		}).Error
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "updating quiz")
	}
	return nil
}

// Delete removes the quiz and its tree.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var questionIDs []uuid.UUID
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "listing questions")
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&models.Answer{}).Error; err != nil {
				return errs.Wrap(errs.CodeInternal, err, "deleting answers")
			}
			if err := tx.Where("quiz_id = ?", id).
				Delete(&models.Question{}).Error; err != nil {
				return errs.Wrap(errs.CodeInternal, err, "deleting questions")
			}
		}
		result := tx.Delete(&models.Quiz{}, "id = ?", id)
		if result.Error != nil {
			return errs.Wrap(errs.CodeInternal, result.Error, "deleting quiz")
		}
		if result.RowsAffected == 0 {
			return errs.New(errs.CodeNotFound, "quiz not found")
		}
		return nil
	})
}

// AddQuestion inserts the question with its answers.
func (r *Repo) AddQuestion(ctx context.Context, question *models.Question) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "adding question")
	}
	return nil
}

// FindQuestion loads the question with its answers.
func (r *Repo) FindQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var question models.Question
	err := r.client.DB().WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&question, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "question not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading question")
	}
	return &question, nil
}

// CountQuestions returns the number of questions on the quiz.
func (r *Repo) CountQuestions(ctx context.Context, quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Question{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	if err != nil {
		return 0, errs.Wrap(errs.CodeInternal, err, "counting questions")
	}
	return count, nil
}

// UpdateQuestion saves the question text.
func (r *Repo) UpdateQuestion(ctx context.Context, question *models.Question) error {
	err := r.client.DB().WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", question.ID).
		Update("text", question.Text).Error
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "updating question")
	}
	return nil
}

// DeleteQuestion removes the question and its answers.
func (r *Repo) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "deleting answers")
		}
		result := tx.Delete(&models.Question{}, "id = ?", id)
		if result.Error != nil {
			return errs.Wrap(errs.CodeInternal, result.Error, "deleting question")
		}
		if result.RowsAffected == 0 {
			return errs.New(errs.CodeNotFound, "question not found")
		}
		return nil
	})
}

// AddAnswer inserts a single answer.
func (r *Repo) AddAnswer(ctx context.Context, answer *models.Answer) error {
	if err := r.client.DB().WithContext(ctx).Create(answer).Error; err != nil {
		return errs.Wrap(errs.CodeInternal, err, "adding answer")
	}
	return nil
}

// FindAnswer loads an answer row.
func (r *Repo) FindAnswer(ctx context.Context, id uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	err := r.client.DB().WithContext(ctx).First(&answer, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "answer not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading answer")
	}
	return &answer, nil
}

// UpdateAnswer saves answer text and correctness.
func (r *Repo) UpdateAnswer(ctx context.Context, answer *models.Answer) error {
	err := r.client.DB().WithContext(ctx).
		Model(&models.Answer{}).
		Where("id = ?", answer.ID).
		Updates(map[string]any{
			"text":       answer.Text,
			"is_correct": answer.IsCorrect,
		}).Error
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "updating answer")
	}
	return nil
}

// DeleteAnswer removes an answer row.
func (r *Repo) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	result := r.client.DB().WithContext(ctx).Delete(&models.Answer{}, "id = ?", id)
	if result.Error != nil {
		return errs.Wrap(errs.CodeInternal, result.Error, "deleting answer")
	}
	if result.RowsAffected == 0 {
		return errs.New(errs.CodeNotFound, "answer not found")
	}
	return nil
}
