package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/tripcrew/internal/domain"
)

func TestNewPaginationParams(t *testing.T) {
	ptr := func(v int) *int { return &v }
	tests := []struct {
		name       string
		page       *int
		limit      *int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", nil, nil, 1, domain.DefaultPageLimit, 0},
		{"explicit", ptr(3), ptr(10), 3, 10, 20},
		{"non-positive values take defaults", ptr(0), ptr(-5), 1, domain.DefaultPageLimit, 0},
		{"limit is clamped", ptr(2), ptr(1000), 2, domain.MaxPageLimit, domain.MaxPageLimit},
		{"huge page is clamped", ptr(math.MaxInt), nil, domain.MaxPage, domain.DefaultPageLimit, (domain.MaxPage - 1) * domain.DefaultPageLimit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewPaginationParams(tc.page, tc.limit)

			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset())
		})
	}
}

func TestPaginationParams_OffsetNeverOverflows(t *testing.T) {
	huge := math.MaxInt
	p := domain.NewPaginationParams(&huge, &huge)

	assert.Equal(t, domain.MaxPageLimit, p.Limit)
	assert.GreaterOrEqual(t, p.Offset(), 0)
}
