package domain

import "math"

// Page size bounds for trip listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxPage keeps Offset within int range for any accepted limit.
	MaxPage = math.MaxInt / MaxPageLimit
)

// PaginationParams selects one page of a listing. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Missing or non-positive values take the defaults (page 1, DefaultPageLimit);
// a page above MaxPage or a limit above MaxPageLimit is clamped rather than
// rejected.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = min(*page, MaxPage)
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset is the number of rows preceding the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
