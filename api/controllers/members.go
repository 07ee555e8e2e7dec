package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/internal/companies"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// MembersController serves the member and admin rosters of a company.
type MembersController struct {
	companies *companies.Service
	log       *logger.Logger
}

func NewMembersController(service *companies.Service, log *logger.Logger) *MembersController {
	return &MembersController{companies: service, log: log}
}

func (c *MembersController) ListMembers(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	members, err := c.companies.ListMembers(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, members)
}

func (c *MembersController) ListAdmins(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	admins, err := c.companies.ListAdmins(r.Context(), actor, companyID, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, admins)
}

func (c *MembersController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	userID, err := uuidParam(r, "userID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.companies.RemoveMember(r.Context(), actor, companyID, userID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}

func (c *MembersController) AssignAdmin(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	userID, err := uuidParam(r, "userID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.companies.AssignAdmin(r.Context(), actor, companyID, userID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}

func (c *MembersController) RevokeAdmin(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	userID, err := uuidParam(r, "userID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.companies.RevokeAdmin(r.Context(), actor, companyID, userID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}

// Leave removes the actor's own membership.
func (c *MembersController) Leave(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.companies.Leave(r.Context(), actor, companyID); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}
