package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryAuditLogs records what the paginator asks of it.
type memoryAuditLogs struct {
	mu           sync.Mutex
	countFilters []any
	queries      []pagination.Query
	created      []*model.AuditLog
}

func (m *memoryAuditLogs) Count(_ context.Context, filter any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countFilters = append(m.countFilters, filter)
	return 0, nil
}

func (m *memoryAuditLogs) Find(_ context.Context, q pagination.Query) ([]model.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	return nil, nil
}

func (m *memoryAuditLogs) Create(_ context.Context, entry *model.AuditLog) error {
	entry.ID = primitive.NewObjectID()
	m.created = append(m.created, entry)
	return nil
}

func TestAuditLogListWithoutAction(t *testing.T) {
	store := &memoryAuditLogs{}
	svc := &AuditLogService{auditLogs: store, now: time.Now}

	result, err := svc.List(context.Background(), pagination.Params{Page: 2, Limit: 5}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Metadata.Page)

	require.Len(t, store.queries, 1)
	q := store.queries[0]
	assert.Nil(t, q.Filter)
	assert.Equal(t, []any{nil}, store.countFilters)
	assert.Equal(t, int64(5), q.Skip)
	assert.Equal(t, int64(5), q.Limit)
	assert.Equal(t, []pagination.SortField{{Field: "at", Descending: true}}, q.Sort)
}

func TestAuditLogListFiltersByAction(t *testing.T) {
	store := &memoryAuditLogs{}
	svc := &AuditLogService{auditLogs: store, now: time.Now}

	_, err := svc.List(context.Background(), pagination.Params{}, model.AuditActionSignIn)
	require.NoError(t, err)

	want := bson.M{"action": model.AuditActionSignIn}
	require.Len(t, store.queries, 1)
	assert.Equal(t, want, store.queries[0].Filter)
	assert.Equal(t, []any{want}, store.countFilters)
	assert.Equal(t, []pagination.SortField{{Field: "at", Descending: true}}, store.queries[0].Sort)
}

func TestAuditLogRecord(t *testing.T) {
	store := &memoryAuditLogs{}
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	svc := &AuditLogService{auditLogs: store, now: func() time.Time { return at }}

	userID := primitive.NewObjectID()
	require.NoError(t, svc.Record(context.Background(), model.AuditActionSignIn, userID, "ada@example.com", map[string]any{"provider": "email"}))

	require.Len(t, store.created, 1)
	entry := store.created[0]
	assert.Equal(t, model.AuditActionSignIn, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	assert.Equal(t, at.UTC(), entry.At)
	assert.Equal(t, time.UTC, entry.At.Location())
}
