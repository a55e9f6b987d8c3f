package pagination

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SortField orders results by one field.
type SortField struct {
	Field      string
	Descending bool
}

// Query is the bounded fetch handed to a Source.
type Query struct {
	// Filter selects documents. Nil matches everything.
	Filter any
	Skip   int64
	Limit  int64
	Sort   []SortField
	// Fields restricts the returned fields. Empty returns whole documents.
	Fields []string
}

// Shape adjusts the query after the bounds and filter are set and before it
// runs, e.g. to add sorting or a projection.
type Shape func(q *Query)

// SortBy returns a Shape appending a sort key.
func SortBy(field string, descending bool) Shape {
	return func(q *Query) {
		q.Sort = append(q.Sort, SortField{Field: field, Descending: descending})
	}
}

// Select returns a Shape restricting the returned fields.
func Select(fields ...string) Shape {
	return func(q *Query) {
		q.Fields = append(q.Fields, fields...)
	}
}

// Source is anything that can count and fetch items of T.
type Source[T any] interface {
	Count(ctx context.Context, filter any) (int64, error)
	Find(ctx context.Context, q Query) ([]T, error)
}

// Paginate fetches one page from src.
//
// The page fetch and the total count run concurrently and are joined before
// the result is assembled. They are independent reads: under concurrent
// writes the total may not line up with the page contents. Callers accept
// that; nothing here serializes the two.
//
// Errors from src are returned as-is.
func Paginate[T any](ctx context.Context, src Source[T], params Params, filter any, shapes ...Shape) (*Result[T], error) {
	p := Normalize(params)

	query := Query{
		Filter: filter,
		Skip:   int64(p.Skip),
		Limit:  int64(p.Limit),
	}
	for _, shape := range shapes {
		if shape != nil {
			shape(&query)
		}
	}

	var (
		data  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = src.Find(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = src.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(data) > p.Limit {
		data = data[:p.Limit]
	}

	return NewResult(data, total, p.Page, p.Limit), nil
}
