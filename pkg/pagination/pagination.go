package pagination

import (
	"net/http"
	"strconv"
)

// DefaultPageSize is used when a request does not specify page_size.
// No upper bound is enforced at this layer.
const DefaultPageSize = 10

// Params holds the 1-based page inputs shared by every list endpoint.
type Params struct {
	Page     int
	PageSize int
}

// FromQuery reads page/page_size query parameters, falling back to the
// first page and the default size on absent or malformed values.
func FromQuery(r *http.Request) Params {
	return Params{
		Page:     intQuery(r, "page", 1),
		PageSize: intQuery(r, "page_size", DefaultPageSize),
	}.Normalize()
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// Normalize clamps the page to 1 and replaces a non-positive size with the
// default.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the page size after normalization.
func (p Params) Limit() int {
	return p.Normalize().PageSize
}
