package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/internal/actions"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// JoinRequestsController serves the user-to-company join workflow.
type JoinRequestsController struct {
	actions *actions.Service
	log     *logger.Logger
}

func NewJoinRequestsController(service *actions.Service, log *logger.Logger) *JoinRequestsController {
	return &JoinRequestsController{actions: service, log: log}
}

// Create files the actor's request to join the company.
func (c *JoinRequestsController) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	request, err := c.actions.CreateJoinRequest(r.Context(), actor, companyID)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, request)
}

// ListForCompany returns the join requests addressed to the company.
func (c *JoinRequestsController) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.actions.CompanyJoinRequests(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}
