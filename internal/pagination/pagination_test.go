package pagination

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   Normalized
	}{
		{"defaults", Params{}, Normalized{Page: 1, Limit: 10, Skip: 0}},
		{"second page", Params{Page: 2, Limit: 10}, Normalized{Page: 2, Limit: 10, Skip: 10}},
		{"limit capped", Params{Page: 1, Limit: 500}, Normalized{Page: 1, Limit: 100, Skip: 0}},
		{"negative page", Params{Page: -3, Limit: 5}, Normalized{Page: 1, Limit: 5, Skip: 0}},
		{"zero limit means default", Params{Page: 3, Limit: 0}, Normalized{Page: 3, Limit: 10, Skip: 20}},
		{"negative limit", Params{Page: 1, Limit: -1}, Normalized{Page: 1, Limit: 10, Skip: 0}},
		{"exact cap", Params{Page: 4, Limit: 100}, Normalized{Page: 4, Limit: 100, Skip: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.params))
		})
	}
}

func TestNormalizeHugePage(t *testing.T) {
	for _, limit := range []int{1, 10, 100} {
		n := Normalize(Params{Page: math.MaxInt, Limit: limit})

		assert.Equal(t, math.MaxInt/limit, n.Page, "limit=%d", limit)
		assert.GreaterOrEqual(t, n.Skip, 0)
		assert.Equal(t, (n.Page-1)*n.Limit, n.Skip)
		assert.Equal(t, n, Normalize(Params{Page: n.Page, Limit: n.Limit}))
	}
}

func TestNormalizeBoundsAndIdempotence(t *testing.T) {
	for page := -5; page <= 20; page++ {
		for limit := -5; limit <= 250; limit += 7 {
			n := Normalize(Params{Page: page, Limit: limit})

			require.GreaterOrEqual(t, n.Page, 1)
			require.GreaterOrEqual(t, n.Limit, 1)
			require.LessOrEqual(t, n.Limit, MaxLimit)
			require.Equal(t, (n.Page-1)*n.Limit, n.Skip)

			again := Normalize(Params{Page: n.Page, Limit: n.Limit})
			require.Equal(t, n, again, "page=%d limit=%d", page, limit)
		}
	}
}

func TestNewResultMetadata(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page, limit int
		totalPages  int
		hasNext     bool
		hasPrev     bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"exact fit", 20, 1, 10, 2, true, false},
		{"partial last page", 25, 3, 10, 3, false, true},
		{"middle page", 25, 2, 10, 3, true, true},
		{"past the end", 5, 4, 10, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult[int](nil, tt.total, tt.page, tt.limit)

			assert.Equal(t, tt.totalPages, r.Metadata.TotalPages)
			assert.Equal(t, tt.hasNext, r.Metadata.HasNext)
			assert.Equal(t, tt.hasPrev, r.Metadata.HasPrev)
			assert.Equal(t, tt.total, r.Metadata.Total)
		})
	}
}

func TestNewResultSerializesEmptyData(t *testing.T) {
	body, err := json.Marshal(NewResult[string](nil, 0, 1, 10))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"data": [],
		"metadata": {"page": 1, "limit": 10, "total": 0, "totalPages": 0, "hasNext": false, "hasPrev": false}
	}`, string(body))
}
