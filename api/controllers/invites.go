package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/api/validators"
	"github.com/quizhubhq/quizhub-backend/internal/actions"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// InvitesController serves the company-to-user invitation workflow.
type InvitesController struct {
	actions *actions.Service
	log     *logger.Logger
}

func NewInvitesController(service *actions.Service, log *logger.Logger) *InvitesController {
	return &InvitesController{actions: service, log: log}
}

// Create sends an invite from the company to a user.
func (c *InvitesController) Create(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req actions.InviteRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	invite, err := c.actions.CreateInvite(r.Context(), actor, companyID, req.UserID)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, invite)
}

// ListForCompany returns the invites the company has sent.
func (c *InvitesController) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.actions.CompanyInvites(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}

// ListInvitedUsers returns users holding a pending invite from the company.
func (c *InvitesController) ListInvitedUsers(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.actions.InvitedUsers(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}

// Respond settles a pending action on behalf of the company.
func (c *InvitesController) Respond(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuidParam(r, "actionID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req actions.DecisionRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	result, err := c.actions.Respond(r.Context(), actor, actionID, *req.Accept)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, result)
}

// Cancel withdraws an action.
func (c *InvitesController) Cancel(w http.ResponseWriter, r *http.Request) {
	actionID, err := uuidParam(r, "actionID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.actions.Cancel(r.Context(), actor, actionID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}
