package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/mongo-starter/internal/database"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a typed view over one MongoDB collection. It satisfies
// pagination.Source[T].
//
// Every call goes through the shared lazy connection, so the first query of
// the process also establishes it.
type Collection[T any] struct {
	db   *database.Database
	name string
}

// NewCollection returns a typed view of the named collection.
func NewCollection[T any](db *database.Database, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) collection(ctx context.Context) (*mongo.Collection, error) {
	return c.db.Collection(ctx, c.name)
}

func matchAll(filter any) any {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

// Count returns the number of documents matching filter (all when nil).
func (c *Collection[T]) Count(ctx context.Context, filter any) (int64, error) {
	coll, err := c.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, matchAll(filter))
}

// Find runs a bounded query and decodes every document.
func (c *Collection[T]) Find(ctx context.Context, q pagination.Query) ([]T, error) {
	coll, err := c.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, matchAll(q.Filter), findOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func findOptions(q pagination.Query) *options.FindOptions {
	opts := options.Find()
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	if len(q.Sort) > 0 {
		sort := bson.D{}
		for _, s := range q.Sort {
			direction := 1
			if s.Descending {
				direction = -1
			}
			sort = append(sort, bson.E{Key: s.Field, Value: direction})
		}
		opts.SetSort(sort)
	}

	if len(q.Fields) > 0 {
		projection := bson.D{}
		for _, field := range q.Fields {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		opts.SetProjection(projection)
	}

	return opts
}

// FindOne returns the first document matching filter, or nil when none does.
func (c *Collection[T]) FindOne(ctx context.Context, filter any) (*T, error) {
	coll, err := c.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc T
	err = coll.FindOne(ctx, matchAll(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByID returns the document with the given _id, or nil when absent.
func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

// InsertOne stores doc and returns its generated _id.
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	coll, err := c.collection(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
