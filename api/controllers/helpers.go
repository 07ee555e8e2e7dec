// Package controllers wires HTTP requests to the service layer.
package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.New(errs.CodeValidation, fmt.Sprintf("invalid %s", name)).
			WithDetails(map[string]string{name: "must be a valid uuid"})
	}
	return id, nil
}
