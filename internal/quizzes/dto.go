package quizzes

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
)

type AnswerInput struct {
	Text      string `json:"text" validate:"required,min=1,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionInput struct {
	Text    string        `json:"text" validate:"required,min=1,max=1000"`
	Answers []AnswerInput `json:"answers" validate:"min=2,dive"`
}

type CreateQuizRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Frequency   int             `json:"frequency" validate:"gte=0"`
	Questions   []QuestionInput `json:"questions" validate:"min=2,dive"`
}

type UpdateQuizRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Frequency   *int    `json:"frequency" validate:"omitempty,gte=0"`
}

type UpdateQuestionRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

type UpdateAnswerRequest struct {
	Text      *string `json:"text" validate:"omitempty,min=1,max=500"`
	IsCorrect *bool   `json:"is_correct"`
}

type AnswerResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
}

type QuestionResponse struct {
	ID      uuid.UUID        `json:"id"`
	Text    string           `json:"text"`
	Answers []AnswerResponse `json:"answers"`
}

type QuizResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Frequency   int                `json:"frequency"`
	CompanyID   uuid.UUID          `json:"company_id"`
	Questions   []QuestionResponse `json:"questions"`
	Created     time.Time          `json:"created"`
	Updated     time.Time          `json:"updated"`
}

func ToAnswerResponse(answer *models.Answer) AnswerResponse {
	return AnswerResponse{ID: answer.ID, Text: answer.Text, IsCorrect: answer.IsCorrect}
}

func ToQuestionResponse(question *models.Question) QuestionResponse {
	answers := make([]AnswerResponse, 0, len(question.Answers))
	for i := range question.Answers {
		answers = append(answers, ToAnswerResponse(&question.Answers[i]))
	}
	return QuestionResponse{ID: question.ID, Text: question.Text, Answers: answers}
}

func ToQuizResponse(quiz *models.Quiz) QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, ToQuestionResponse(&quiz.Questions[i]))
	}
	return QuizResponse{
		ID:          quiz.ID,
		Name:        quiz.Name,
		Description: quiz.Description,
		Frequency:   quiz.Frequency,
		CompanyID:   quiz.CompanyID,
		Questions:   questions,
		Created:     quiz.CreatedAt,
		Updated:     quiz.UpdatedAt,
	}
}

func ToQuizResponses(list []models.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(list))
	for i := range list {
		out = append(out, ToQuizResponse(&list[i]))
	}
	return out
}
