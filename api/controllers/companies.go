package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/api/validators"
	"github.com/quizhubhq/quizhub-backend/internal/companies"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// CompaniesController serves the company lifecycle and visibility.
type CompaniesController struct {
	companies *companies.Service
	log       *logger.Logger
}

func NewCompaniesController(service *companies.Service, log *logger.Logger) *CompaniesController {
	return &CompaniesController{companies: service, log: log}
}

func (c *CompaniesController) Create(w http.ResponseWriter, r *http.Request) {
	var req companies.CreateCompanyRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	company, err := c.companies.Create(r.Context(), actor, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, company)
}

func (c *CompaniesController) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, err := c.companies.List(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, list)
}

func (c *CompaniesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	company, err := c.companies.Get(r.Context(), actor, id)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, company)
}

func (c *CompaniesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req companies.UpdateCompanyRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	company, err := c.companies.Update(r.Context(), actor, id, req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, company)
}

func (c *CompaniesController) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	var req companies.VisibilityRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	company, err := c.companies.SetVisibility(r.Context(), actor, id, *req.Visible)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, company)
}

func (c *CompaniesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "companyID")
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.companies.Delete(r.Context(), actor, id); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}
