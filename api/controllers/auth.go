package controllers

import (
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/responses"
	"github.com/quizhubhq/quizhub-backend/api/validators"
	"github.com/quizhubhq/quizhub-backend/internal/auth"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// AuthController serves sign-up and the token lifecycle.
type AuthController struct {
	auth *auth.Service
	log  *logger.Logger
}

func NewAuthController(service *auth.Service, log *logger.Logger) *AuthController {
	return &AuthController{auth: service, log: log}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	user, err := c.auth.Register(r.Context(), req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, user)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	tokens, err := c.auth.Login(r.Context(), req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, tokens)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	tokens, err := c.auth.Refresh(r.Context(), req)
	if err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, tokens)
}

type logoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	if err := c.auth.Logout(r.Context(), req.AccessToken); err != nil {
		responses.WriteError(w, r, c.log, err)
		return
	}
	responses.WriteNoContent(w)
}
