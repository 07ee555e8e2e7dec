package quizzes

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

type stubQuizStore struct {
	quizzes   map[uuid.UUID]*models.Quiz
	questions map[uuid.UUID]*models.Question
	answers   map[uuid.UUID]*models.Answer
}

func newStubQuizStore() *stubQuizStore {
	return &stubQuizStore{
		quizzes:   map[uuid.UUID]*models.Quiz{},
		questions: map[uuid.UUID]*models.Question{},
		answers:   map[uuid.UUID]*models.Answer{},
	}
}

func (s *stubQuizStore) Create(_ context.Context, quiz *models.Quiz) error {
	quiz.ID = uuid.New()
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		question.ID = uuid.New()
		question.QuizID = quiz.ID
		for j := range question.Answers {
			answer := &question.Answers[j]
			answer.ID = uuid.New()
			answer.QuestionID = question.ID
			s.answers[answer.ID] = answer
		}
		s.questions[question.ID] = question
	}
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *stubQuizStore) FindByID(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "quiz not found")
	}
	return quiz, nil
}

func (s *stubQuizStore) ListByCompany(_ context.Context, companyID uuid.UUID, _ pagination.Params) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, quiz := range s.quizzes {
		if quiz.CompanyID == companyID {
			out = append(out, *quiz)
		}
	}
	return out, nil
}

func (s *stubQuizStore) Update(_ context.Context, quiz *models.Quiz) error {
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *stubQuizStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.quizzes[id]; !ok {
		return errs.New(errs.CodeNotFound, "quiz not found")
	}
	delete(s.quizzes, id)
	return nil
}

func (s *stubQuizStore) AddQuestion(_ context.Context, question *models.Question) error {
	question.ID = uuid.New()
	for i := range question.Answers {
		answer := &question.Answers[i]
		answer.ID = uuid.New()
		answer.QuestionID = question.ID
		s.answers[answer.ID] = answer
	}
	s.questions[question.ID] = question
	if quiz, ok := s.quizzes[question.QuizID]; ok {
		quiz.Questions = append(quiz.Questions, *question)
	}
	return nil
}

func (s *stubQuizStore) FindQuestion(_ context.Context, id uuid.UUID) (*models.Question, error) {
	question, ok := s.questions[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "question not found")
	}
	return question, nil
}

func (s *stubQuizStore) CountQuestions(_ context.Context, quizID uuid.UUID) (int64, error) {
	var count int64
	for _, question := range s.questions {
		if question.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (s *stubQuizStore) UpdateQuestion(_ context.Context, question *models.Question) error {
	s.questions[question.ID] = question
	return nil
}

func (s *stubQuizStore) DeleteQuestion(_ context.Context, id uuid.UUID) error {
	if _, ok := s.questions[id]; !ok {
		return errs.New(errs.CodeNotFound, "question not found")
	}
	delete(s.questions, id)
	return nil
}

func (s *stubQuizStore) AddAnswer(_ context.Context, answer *models.Answer) error {
	answer.ID = uuid.New()
	s.answers[answer.ID] = answer
	return nil
}

func (s *stubQuizStore) FindAnswer(_ context.Context, id uuid.UUID) (*models.Answer, error) {
	answer, ok := s.answers[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "answer not found")
	}
	return answer, nil
}

func (s *stubQuizStore) UpdateAnswer(_ context.Context, answer *models.Answer) error {
	s.answers[answer.ID] = answer
	return nil
}

func (s *stubQuizStore) DeleteAnswer(_ context.Context, id uuid.UUID) error {
	if _, ok := s.answers[id]; !ok {
		return errs.New(errs.CodeNotFound, "answer not found")
	}
	delete(s.answers, id)
	return nil
}

type stubCompanies struct {
	byID map[uuid.UUID]*models.Company
}

func (s *stubCompanies) FindByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	company, ok := s.byID[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "company not found")
	}
	return company, nil
}

type authorPolicy struct {
	authors map[uuid.UUID]uuid.UUID
}

func (p authorPolicy) RequireAuthenticated(actor *models.User) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	return nil
}

func (p authorPolicy) CanAuthorQuiz(_ context.Context, actor *models.User, companyID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser || p.authors[companyID] == actor.ID {
		return nil
	}
	return errs.New(errs.CodeForbidden, "only the owner or an admin may author quizzes")
}

func validQuestions() []QuestionInput {
	return []QuestionInput{
		{Text: "Q1", Answers: []AnswerInput{{Text: "right", IsCorrect: true}, {Text: "wrong"}}},
		{Text: "Q2", Answers: []AnswerInput{{Text: "right", IsCorrect: true}, {Text: "wrong"}}},
	}
}

type quizFixture struct {
	service *Service
	store   *stubQuizStore
	author  *models.User
	company *models.Company
}

func newQuizFixture() *quizFixture {
	store := newStubQuizStore()
	author := &models.User{ID: uuid.New(), Username: "author"}
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: author.ID, Visible: true}
	companiesStub := &stubCompanies{byID: map[uuid.UUID]*models.Company{company.ID: company}}
	policy := authorPolicy{authors: map[uuid.UUID]uuid.UUID{company.ID: author.ID}}
	return &quizFixture{
		service: NewService(store, companiesStub, policy, nil),
		store:   store,
		author:  author,
		company: company,
	}
}

func (f *quizFixture) createQuiz(t *testing.T) QuizResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), f.author, f.company.ID, CreateQuizRequest{
		Name:      "Onboarding",
		Questions: validQuestions(),
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return resp
}

func TestCreateEnforcesStructuralFloors(t *testing.T) {
	f := newQuizFixture()

	// One question is too few.
	_, err := f.service.Create(context.Background(), f.author, f.company.ID, CreateQuizRequest{
		Name:      "Short",
		Questions: validQuestions()[:1],
	})
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for one question, got %v", err)
	}

	// A question with a single answer fails.
	broken := validQuestions()
	broken[1].Answers = broken[1].Answers[:1]
	_, err = f.service.Create(context.Background(), f.author, f.company.ID, CreateQuizRequest{
		Name:      "Short answers",
		Questions: broken,
	})
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for one answer, got %v", err)
	}

	// A question with no correct answer fails.
	wrong := validQuestions()
	wrong[0].Answers = []AnswerInput{{Text: "a"}, {Text: "b"}}
	_, err = f.service.Create(context.Background(), f.author, f.company.ID, CreateQuizRequest{
		Name:      "No correct",
		Questions: wrong,
	})
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for no correct answer, got %v", err)
	}

	// Nothing is persisted on a failed create.
	if len(f.store.quizzes) != 0 {
		t.Fatalf("expected no quizzes stored, got %d", len(f.store.quizzes))
	}

	resp := f.createQuiz(t)
	if len(resp.Questions) != 2 {
		t.Fatalf("expected two questions, got %d", len(resp.Questions))
	}
}

func TestCreateRequiresAuthorRole(t *testing.T) {
	f := newQuizFixture()
	outsider := &models.User{ID: uuid.New()}

	_, err := f.service.Create(context.Background(), outsider, f.company.ID, CreateQuizRequest{
		Name:      "Nope",
		Questions: validQuestions(),
	})
	if !errs.HasCode(err, errs.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestAddQuestionValidatesInput(t *testing.T) {
	f := newQuizFixture()
	quiz := f.createQuiz(t)

	_, err := f.service.AddQuestion(context.Background(), f.author, quiz.ID, QuestionInput{
		Text:    "Bad",
		Answers: []AnswerInput{{Text: "only one", IsCorrect: true}},
	})
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	added, err := f.service.AddQuestion(context.Background(), f.author, quiz.ID, QuestionInput{
		Text:    "Q3",
		Answers: []AnswerInput{{Text: "right", IsCorrect: true}, {Text: "wrong"}},
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if len(added.Answers) != 2 {
		t.Fatalf("expected two answers, got %d", len(added.Answers))
	}
}

func TestDeleteQuestionEnforcesFloor(t *testing.T) {
	f := newQuizFixture()
	quiz := f.createQuiz(t)

	// With exactly two questions, deletion is refused.
	err := f.service.DeleteQuestion(context.Background(), f.author, quiz.Questions[0].ID)
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR at the floor, got %v", err)
	}

	if _, err := f.service.AddQuestion(context.Background(), f.author, quiz.ID, QuestionInput{
		Text:    "Q3",
		Answers: []AnswerInput{{Text: "right", IsCorrect: true}, {Text: "wrong"}},
	}); err != nil {
		t.Fatalf("add question: %v", err)
	}

	// Above the floor deletion goes through.
	if err := f.service.DeleteQuestion(context.Background(), f.author, quiz.Questions[0].ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
}

func TestAnswerEditsAreNotRevalidated(t *testing.T) {
	f := newQuizFixture()
	quiz := f.createQuiz(t)
	question := quiz.Questions[0]

	// Flip the only correct answer to incorrect; the edit is accepted even
	// though the question now has no correct answer.
	var correctID uuid.UUID
	for _, a := range question.Answers {
		if a.IsCorrect {
			correctID = a.ID
		}
	}
	wrong := false
	updated, err := f.service.UpdateAnswer(context.Background(), f.author, correctID, UpdateAnswerRequest{IsCorrect: &wrong})
	if err != nil {
		t.Fatalf("update answer: %v", err)
	}
	if updated.IsCorrect {
		t.Fatal("expected the flip to persist")
	}

	// Deleting answers below the per-question floor is also accepted.
	for _, a := range question.Answers {
		if err := f.service.DeleteAnswer(context.Background(), f.author, a.ID); err != nil {
			t.Fatalf("delete answer: %v", err)
		}
	}
}

func TestUpdateQuizMetadata(t *testing.T) {
	f := newQuizFixture()
	quiz := f.createQuiz(t)

	name := "Renamed"
	frequency := 7
	resp, err := f.service.Update(context.Background(), f.author, quiz.ID, UpdateQuizRequest{
		Name:      &name,
		Frequency: &frequency,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Name != "Renamed" || resp.Frequency != 7 {
		t.Errorf("expected updated metadata, got name=%q frequency=%d", resp.Name, resp.Frequency)
	}
}
