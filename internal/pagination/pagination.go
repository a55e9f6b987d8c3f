// Package pagination turns raw page/limit input into bounded values and
// fetches one page of any collection through a small capability interface.
package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is raw pagination input. Zero means "not provided".
type Params struct {
	Page  int
	Limit int
}

// Normalized is pagination input after clamping.
// Page >= 1, 1 <= Limit <= MaxLimit, Skip = (Page-1)*Limit.
type Normalized struct {
	Page  int
	Limit int
	Skip  int
}

// Normalize clamps params into bounds. It never rejects input:
//
//   - a missing or non-positive page becomes 1
//   - a missing or non-positive limit becomes 10
//   - a limit above 100 becomes 100
//   - a page whose skip would overflow an int is lowered until it fits
func Normalize(params Params) Normalized {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	page := params.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt / limit
	}

	return Normalized{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// Metadata describes where a page sits in the full result set.
type Metadata struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Result is one page of items plus its metadata.
type Result[T any] struct {
	Data     []T      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// NewResult assembles a page. TotalPages is ceil(total/limit); a nil data
// slice becomes empty so it serializes as [].
func NewResult[T any](data []T, total int64, page, limit int) *Result[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &Result[T]{
		Data: data,
		Metadata: Metadata{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}
