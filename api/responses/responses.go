// Package responses defines the JSON envelope every handler writes.
// Success bodies wrap their payload in {"data": ...}; failures carry a
// stable error code clients can branch on.
package responses

import (
	"encoding/json"
	"net/http"

	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// WriteSuccess writes the payload inside the data envelope.
func WriteSuccess(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Data: payload})
}

// WriteNoContent writes an empty 204.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps the error to its HTTP status and public shape. Internal
// detail only reaches the log, never the response body.
func WriteError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	appErr := errs.As(err)
	if appErr == nil {
		appErr = errs.Wrap(errs.CodeInternal, err, "unhandled error")
	}

	meta := errs.MetadataFor(appErr.Code())
	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			ctx := logg.WithField(r.Context(), "error_dump", errs.Dump(err))
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Warn(r.Context(), appErr.Error())
		}
	}

	body := errorBody{Code: appErr.Code(), Message: appErr.Message()}
	if body.Message == "" {
		body.Message = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		body.Details = appErr.Details()
	}
	if appErr.Code() == errs.CodeInternal {
		// Never leak internals; replace with the canned message.
		body.Message = meta.PublicMessage
		body.Details = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}
