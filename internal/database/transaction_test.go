package database

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeSession stages writes and only publishes them on commit.
type fakeSession struct {
	staged    []string
	committed []string
	aborted   bool
	ends      int
}

type stagedKey struct{}

func (s *fakeSession) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.staged = nil
	if err := fn(context.WithValue(ctx, stagedKey{}, s)); err != nil {
		s.aborted = true
		s.staged = nil
		return err
	}
	s.committed = append(s.committed, s.staged...)
	s.staged = nil
	return nil
}

func (s *fakeSession) end(context.Context) {
	s.ends++
}

func write(ctx context.Context, doc string) {
	s := ctx.Value(stagedKey{}).(*fakeSession)
	s.staged = append(s.staged, doc)
}

func newTxDatabase(t *testing.T, session *fakeSession, startErr error) *Database {
	t.Helper()
	logger := zerolog.Nop()
	db := newWithDialer(testConfig(), &logger, func(ctx context.Context) (*mongo.Client, error) {
		return nil, errors.New("unused")
	})
	db.startSession = func(ctx context.Context) (txSession, error) {
		if startErr != nil {
			return nil, startErr
		}
		return session, nil
	}
	return db
}

func TestRunInTransactionCommits(t *testing.T) {
	session := &fakeSession{}
	db := newTxDatabase(t, session, nil)

	id, err := RunInTransaction(context.Background(), db, func(ctx context.Context) (string, error) {
		write(ctx, "user")
		write(ctx, "audit")
		return "user-1", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, []string{"user", "audit"}, session.committed)
	assert.False(t, session.aborted)
	assert.Equal(t, 1, session.ends)
}

func TestRunInTransactionAbortsWithoutPartialWrites(t *testing.T) {
	session := &fakeSession{}
	db := newTxDatabase(t, session, nil)
	workErr := errors.New("audit insert failed")

	id, err := RunInTransaction(context.Background(), db, func(ctx context.Context) (string, error) {
		write(ctx, "user")
		return "user-1", workErr
	})

	assert.ErrorIs(t, err, workErr)
	assert.Empty(t, id)
	assert.Empty(t, session.committed)
	assert.True(t, session.aborted)
	assert.Equal(t, 1, session.ends)
}

func TestRunInTransactionEndsSessionOnPanic(t *testing.T) {
	session := &fakeSession{}
	db := newTxDatabase(t, session, nil)

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = RunInTransaction(context.Background(), db, func(ctx context.Context) (int, error) {
			write(ctx, "user")
			panic("boom")
		})
	})

	assert.Empty(t, session.committed)
	assert.Equal(t, 1, session.ends)
}

func TestRunInTransactionStartFailure(t *testing.T) {
	session := &fakeSession{}
	startErr := errors.New("connection refused")
	db := newTxDatabase(t, session, startErr)

	called := false
	_, err := RunInTransaction(context.Background(), db, func(ctx context.Context) (int, error) {
		called = true
		return 1, nil
	})

	assert.ErrorIs(t, err, startErr)
	assert.False(t, called)
	assert.Equal(t, 0, session.ends)
}
