package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMatchAll(t *testing.T) {
	assert.Equal(t, bson.M{}, matchAll(nil))

	filter := bson.M{"action": model.AuditActionSignIn}
	assert.Equal(t, filter, matchAll(filter))
}

func TestFindOptions(t *testing.T) {
	q := pagination.Query{Skip: 20, Limit: 10}
	pagination.SortBy("at", true)(&q)
	pagination.SortBy("_id", false)(&q)
	pagination.Select("email", "name")(&q)

	opts := findOptions(q)

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}, {Key: "name", Value: 1}}, opts.Projection)
}

func TestFindOptionsFirstPage(t *testing.T) {
	opts := findOptions(pagination.Query{Limit: 10})

	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Sort)
	assert.Nil(t, opts.Projection)
}

func TestGetByIDMalformedHex(t *testing.T) {
	// No database is needed: the id is rejected before any query.
	repo := NewUserRepository(nil)

	user, err := repo.GetByID(context.Background(), "not-an-object-id")
	require.NoError(t, err)
	assert.Nil(t, user)
}
