package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func TestDecodeJSONBodyAcceptsValidInput(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","name":"Al"}`))
	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Email != "a@example.com" {
		t.Errorf("expected decoded email, got %q", payload.Email)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com","name":"Al","extra":1}`))
	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","name":"A"}`))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	appErr := errs.As(err)
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected per-field details, got %T", appErr.Details())
	}
	if details["email"] == "" || details["name"] == "" {
		t.Fatalf("expected messages for both fields, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for malformed json, got %v", err)
	}
}
