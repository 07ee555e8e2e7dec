package middleware

import (
	"fmt"
	"net/http"

	"github.com/quizhubhq/quizhub-backend/api/responses"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// Recoverer turns handler panics into 500 responses instead of dropped
// connections.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := errs.New(errs.CodeInternal, fmt.Sprintf("panic: %v", rec))
					responses.WriteError(w, r, logg, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
