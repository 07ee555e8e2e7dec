package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Fatalf("expected default size, got %d", p.PageSize)
	}
}

func TestOffsetIsOneBased(t *testing.T) {
	p := Params{Page: 3, PageSize: 20}
	if p.Offset() != 40 {
		t.Fatalf("expected offset 40, got %d", p.Offset())
	}
	if p.Limit() != 20 {
		t.Fatalf("expected limit 20, got %d", p.Limit())
	}
}

func TestOffsetFirstPageIsZero(t *testing.T) {
	p := Params{Page: 1, PageSize: 50}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}
}

func TestPageSizeIsNotCapped(t *testing.T) {
	p := Params{Page: 1, PageSize: 5000}.Normalize()
	if p.PageSize != 5000 {
		t.Fatalf("expected size to pass through, got %d", p.PageSize)
	}
}

func TestFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/companies?page=2&page_size=5", nil)
	p := FromQuery(r)
	if p.Page != 2 || p.PageSize != 5 {
		t.Fatalf("unexpected params %+v", p)
	}

	r = httptest.NewRequest("GET", "/companies?page=abc", nil)
	p = FromQuery(r)
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Fatalf("expected fallbacks, got %+v", p)
	}
}
