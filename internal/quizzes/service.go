package quizzes

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// Structural floors checked when content is created. Later edits can dig
// below them; only question deletion re-checks the quiz floor.
const (
	minQuestionsPerQuiz   = 2
	minAnswersPerQuestion = 2
)

type quizStore interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddQuestion(ctx context.Context, question *models.Question) error
	FindQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
	CountQuestions(ctx context.Context, quizID uuid.UUID) (int64, error)
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	AddAnswer(ctx context.Context, answer *models.Answer) error
	FindAnswer(ctx context.Context, id uuid.UUID) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, answer *models.Answer) error
	DeleteAnswer(ctx context.Context, id uuid.UUID) error
}

type companyReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type accessPolicy interface {
	RequireAuthenticated(actor *models.User) error
	CanAuthorQuiz(ctx context.Context, actor *models.User, companyID uuid.UUID) error
}

// Service implements quiz authoring and reading.
type Service struct {
	quizzes   quizStore
	companies companyReader
	policy    accessPolicy
	log       *logger.Logger
}

func NewService(quizzes quizStore, companies companyReader, policy accessPolicy, log *logger.Logger) *Service {
	return &Service{quizzes: quizzes, companies: companies, policy: policy, log: log}
}

func validateQuestionInput(input QuestionInput) error {
	if len(input.Answers) < minAnswersPerQuestion {
		return errs.New(errs.CodeValidation, "each question needs at least two answers")
	}
	for _, answer := range input.Answers {
		if answer.IsCorrect {
			return nil
		}
	}
	return errs.New(errs.CodeValidation, "each question needs at least one correct answer")
}

func buildQuestion(input QuestionInput) models.Question {
	question := models.Question{Text: input.Text}
	for _, a := range input.Answers {
		question.Answers = append(question.Answers, models.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return question
}

// Create builds the full quiz tree atomically after checking the
// structural floors.
func (s *Service) Create(ctx context.Context, actor *models.User, companyID uuid.UUID, req CreateQuizRequest) (QuizResponse, error) {
	if err := s.policy.CanAuthorQuiz(ctx, actor, companyID); err != nil {
		return QuizResponse{}, err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return QuizResponse{}, err
	}

	if len(req.Questions) < minQuestionsPerQuiz {
		return QuizResponse{}, errs.New(errs.CodeValidation, "a quiz needs at least two questions")
	}
	quiz := &models.Quiz{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		CompanyID:   companyID,
	}
	for _, q := range req.Questions {
		if err := validateQuestionInput(q); err != nil {
			return QuizResponse{}, err
		}
		quiz.Questions = append(quiz.Questions, buildQuestion(q))
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return QuizResponse{}, err
	}
	if s.log != nil {
		s.log.Info(s.log.WithCompanyID(ctx, companyID.String()), "quiz created")
	}
	return ToQuizResponse(quiz), nil
}

func (s *Service) Get(ctx context.Context, actor *models.User, id uuid.UUID) (QuizResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return QuizResponse{}, err
	}
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return QuizResponse{}, err
	}
	return ToQuizResponse(quiz), nil
}

func (s *Service) ListByCompany(ctx context.Context, actor *models.User, companyID uuid.UUID, page pagination.Params) ([]QuizResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}
	list, err := s.quizzes.ListByCompany(ctx, companyID, page)
	if err != nil {
		return nil, err
	}
	return ToQuizResponses(list), nil
}

func (s *Service) Update(ctx context.Context, actor *models.User, id uuid.UUID, req UpdateQuizRequest) (QuizResponse, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return QuizResponse{}, err
	}
	if err := s.policy.CanAuthorQuiz(ctx, actor, quiz.CompanyID); err != nil {
		return QuizResponse{}, err
	}

	if req.Name != nil {
		quiz.Name = *req.Name
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Frequency != nil {
		quiz.Frequency = *req.Frequency
	}
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return QuizResponse{}, err
	}
	return ToQuizResponse(quiz), nil
}

func (s *Service) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanAuthorQuiz(ctx, actor, quiz.CompanyID); err != nil {
		return err
	}
	return s.quizzes.Delete(ctx, id)
}

// AddQuestion appends a validated question to the quiz.
func (s *Service) AddQuestion(ctx context.Context, actor *models.User, quizID uuid.UUID, input QuestionInput) (QuestionResponse, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return QuestionResponse{}, err
	}
	if err := s.policy.CanAuthorQuiz(ctx, actor, quiz.CompanyID); err != nil {
		return QuestionResponse{}, err
	}
	if err := validateQuestionInput(input); err != nil {
		return QuestionResponse{}, err
	}

	question := buildQuestion(input)
	question.QuizID = quizID
	if err := s.quizzes.AddQuestion(ctx, &question); err != nil {
		return QuestionResponse{}, err
	}
	return ToQuestionResponse(&question), nil
}

// UpdateQuestion rewrites the question text. The answer set is untouched
// and not re-validated.
func (s *Service) UpdateQuestion(ctx context.Context, actor *models.User, questionID uuid.UUID, req UpdateQuestionRequest) (QuestionResponse, error) {
	question, err := s.quizzes.FindQuestion(ctx, questionID)
	if err != nil {
		return QuestionResponse{}, err
	}
	if err := s.authorizeForQuiz(ctx, actor, question.QuizID); err != nil {
		return QuestionResponse{}, err
	}

	question.Text = req.Text
	if err := s.quizzes.UpdateQuestion(ctx, question); err != nil {
		return QuestionResponse{}, err
	}
	return ToQuestionResponse(question), nil
}

// DeleteQuestion removes a question unless the quiz would drop below the
// two-question floor.
func (s *Service) DeleteQuestion(ctx context.Context, actor *models.User, questionID uuid.UUID) error {
	question, err := s.quizzes.FindQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if err := s.authorizeForQuiz(ctx, actor, question.QuizID); err != nil {
		return err
	}

	count, err := s.quizzes.CountQuestions(ctx, question.QuizID)
	if err != nil {
		return err
	}
	if count <= minQuestionsPerQuiz {
		return errs.New(errs.CodeValidation, "a quiz cannot drop below two questions")
	}
	return s.quizzes.DeleteQuestion(ctx, questionID)
}

// AddAnswer appends one answer to a question without structural checks.
func (s *Service) AddAnswer(ctx context.Context, actor *models.User, questionID uuid.UUID, input AnswerInput) (AnswerResponse, error) {
	question, err := s.quizzes.FindQuestion(ctx, questionID)
	if err != nil {
		return AnswerResponse{}, err
	}
	if err := s.authorizeForQuiz(ctx, actor, question.QuizID); err != nil {
		return AnswerResponse{}, err
	}

	answer := &models.Answer{Text: input.Text, IsCorrect: input.IsCorrect, QuestionID: questionID}
	if err := s.quizzes.AddAnswer(ctx, answer); err != nil {
		return AnswerResponse{}, err
	}
	return ToAnswerResponse(answer), nil
}

// UpdateAnswer edits an answer. Correctness flips are not re-validated, so
// a question can end up with no correct answer.
func (s *Service) UpdateAnswer(ctx context.Context, actor *models.User, answerID uuid.UUID, req UpdateAnswerRequest) (AnswerResponse, error) {
	answer, err := s.quizzes.FindAnswer(ctx, answerID)
	if err != nil {
		return AnswerResponse{}, err
	}
	question, err := s.quizzes.FindQuestion(ctx, answer.QuestionID)
	if err != nil {
		return AnswerResponse{}, err
	}
	if err := s.authorizeForQuiz(ctx, actor, question.QuizID); err != nil {
		return AnswerResponse{}, err
	}

	if req.Text != nil {
		answer.Text = *req.Text
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}
	if err := s.quizzes.UpdateAnswer(ctx, answer); err != nil {
		return AnswerResponse{}, err
	}
	return ToAnswerResponse(answer), nil
}

// DeleteAnswer removes an answer without re-checking the per-question
// floor.
func (s *Service) DeleteAnswer(ctx context.Context, actor *models.User, answerID uuid.UUID) error {
	answer, err := s.quizzes.FindAnswer(ctx, answerID)
	if err != nil {
		return err
	}
	question, err := s.quizzes.FindQuestion(ctx, answer.QuestionID)
	if err != nil {
		return err
	}
	if err := s.authorizeForQuiz(ctx, actor, question.QuizID); err != nil {
		return err
	}
	return s.quizzes.DeleteAnswer(ctx, answerID)
}

func (s *Service) authorizeForQuiz(ctx context.Context, actor *models.User, quizID uuid.UUID) error {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return err
	}
	return s.policy.CanAuthorQuiz(ctx, actor, quiz.CompanyID)
}
