package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return body
}

func TestWriteSuccessWrapsPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusCreated, map[string]string{"name": "Acme"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok || data["name"] != "Acme" {
		t.Fatalf("expected data envelope, got %v", body)
	}
}

func TestWriteErrorMapsCodes(t *testing.T) {
	cases := []struct {
		code   errs.Code
		status int
	}{
		{errs.CodeValidation, http.StatusUnprocessableEntity},
		{errs.CodeUnauthorized, http.StatusUnauthorized},
		{errs.CodeForbidden, http.StatusForbidden},
		{errs.CodeNotFound, http.StatusNotFound},
		{errs.CodeConflict, http.StatusConflict},
		{errs.CodeStateConflict, http.StatusConflict},
		{errs.CodeDependency, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteError(rec, req, nil, errs.New(tc.code, "boom"))

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			body := decodeBody(t, rec)
			errBody, ok := body["error"].(map[string]any)
			if !ok || errBody["code"] != string(tc.code) {
				t.Fatalf("expected error code %s, got %v", tc.code, body)
			}
			if errBody["message"] != "boom" {
				t.Errorf("expected the app message, got %v", errBody["message"])
			}
		})
	}
}

func TestWriteErrorScrubsInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, nil, errs.New(errs.CodeInternal, "pq: connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errBody := body["error"].(map[string]any)
	if errBody["message"] == "pq: connection reset by peer" {
		t.Fatal("expected internal detail to be scrubbed")
	}
}

func TestWriteErrorWrapsUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, nil, http.ErrBodyNotAllowed)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unclassified error, got %d", rec.Code)
	}
}
