package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/internal/actions"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// UserActionsController serves the actor's own workflow views.
type UserActionsController struct {
	actions *actions.Service
	log     *logger.Logger
}

func NewUserActionsController(service *actions.Service, log *logger.Logger) *UserActionsController {
	return &UserActionsController{actions: service, log: log}
}

// MyInvites lists the invites addressed to the actor.
func (c *UserActionsController) MyInvites(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.actions.MyInvites(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}

// MyJoinRequests lists the join requests the actor has sent.
func (c *UserActionsController) MyJoinRequests(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.actions.MyJoinRequests(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}
