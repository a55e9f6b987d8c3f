package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// txSession is the part of a driver session the transaction runner uses.
type txSession interface {
	// withTransaction runs fn inside a transaction: commit when fn returns
	// nil, abort when it returns an error.
	withTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// end releases the session.
	end(ctx context.Context)
}

// mongoSession adapts mongo.Session to txSession.
type mongoSession struct {
	session mongo.Session
}

func (s mongoSession) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := s.session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (s mongoSession) end(ctx context.Context) {
	s.session.EndSession(ctx)
}

func (db *Database) startMongoSession(ctx context.Context) (txSession, error) {
	client, err := db.Client(ctx)
	if err != nil {
		return nil, err
	}

	session, err := client.StartSession()
	if err != nil {
		return nil, err
	}

	return mongoSession{session: session}, nil
}

// RunInTransaction runs work inside a MongoDB transaction.
//
// It ensures the connection, opens a session, runs work in a transaction and
// commits when work succeeds or aborts when it fails. The session is released
// exactly once on every path, including a panic inside work.
//
// work receives a context bound to the session; every store call made with it
// joins the transaction:
//
//	user, err := database.RunInTransaction(ctx, db, func(txCtx context.Context) (*model.User, error) {
//	    if err := users.Create(txCtx, user); err != nil {
//	        return nil, err
//	    }
//	    return user, audit.Create(txCtx, entry)
//	})
//
// On failure the error from work is returned unchanged after the abort.
func RunInTransaction[T any](ctx context.Context, db *Database, work func(ctx context.Context) (T, error)) (T, error) {
	var result T

	session, err := db.startSession(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.end(ctx)

	err = session.withTransaction(ctx, func(txCtx context.Context) error {
		value, err := work(txCtx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
