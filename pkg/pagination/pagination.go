package pagination

import (
	"math"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/types"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
	// MaxPage keeps (page-1)*MaxLimit inside a 32-bit int.
	MaxPage = 1_000_000
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps page to [1, MaxPage] and limit to [1, MaxLimit]; zero values take the defaults.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Normalized returns a copy of p passed through Normalize.
func (p Params) Normalized() Params {
	return Normalize(p.Page, p.Limit)
}

// Offset returns the number of rows skipped before the current page.
func (p Params) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.Limit
}

// Meta builds the pagination envelope for a result set of total rows.
func (p Params) Meta(total int64) types.Pagination {
	n := p.Normalized()
	return types.Pagination{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: TotalPages(total, n.Limit),
	}
}

// TotalPages returns ceil(total/limit), or 0 for an empty result set.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
