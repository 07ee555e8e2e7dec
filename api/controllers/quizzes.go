package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/api/validators"
	"github.com/quizhubhq/quizhub-backend/internal/quizzes"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// QuizzesController serves quiz authoring and reading.
type QuizzesController struct {
	quizzes *quizzes.Service
	log     *logger.Logger
}

func NewQuizzesController(service *quizzes.Service, log *logger.Logger) *QuizzesController {
	return &QuizzesController{quizzes: service, log: log}
}

func (c *QuizzesController) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.CreateQuizRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	quiz, err := c.quizzes.Create(r.Context(), actor, companyID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, quiz)
}

func (c *QuizzesController) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.quizzes.ListByCompany(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}

func (c *QuizzesController) Get(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuidParam(r, "quizID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	quiz, err := c.quizzes.Get(r.Context(), actor, quizID)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, quiz)
}

func (c *QuizzesController) Update(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuidParam(r, "quizID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.UpdateQuizRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	quiz, err := c.quizzes.Update(r.Context(), actor, quizID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, quiz)
}

func (c *QuizzesController) Delete(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuidParam(r, "quizID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.quizzes.Delete(r.Context(), actor, quizID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}

func (c *QuizzesController) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuidParam(r, "quizID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.QuestionInput
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	question, err := c.quizzes.AddQuestion(r.Context(), actor, quizID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, question)
}

func (c *QuizzesController) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.UpdateQuestionRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	question, err := c.quizzes.UpdateQuestion(r.Context(), actor, questionID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, question)
}

func (c *QuizzesController) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.quizzes.DeleteQuestion(r.Context(), actor, questionID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}

func (c *QuizzesController) AddAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuidParam(r, "questionID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.AnswerInput
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	answer, err := c.quizzes.AddAnswer(r.Context(), actor, questionID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, answer)
}

func (c *QuizzesController) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := uuidParam(r, "answerID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req quizzes.UpdateAnswerRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	answer, err := c.quizzes.UpdateAnswer(r.Context(), actor, answerID, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, answer)
}

func (c *QuizzesController) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, err := uuidParam(r, "answerID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.quizzes.DeleteAnswer(r.Context(), actor, answerID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}
