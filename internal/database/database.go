// Package database owns the process-wide MongoDB connection.
//
// The connection is established lazily: nothing dials the store until the
// first caller asks for the client. Concurrent first callers share a single
// in-flight connection attempt; once established the client is cached for the
// life of the process and released by Close on shutdown.
//
// It handles:
//   - building client options from config (URI, pool size, timeouts)
//   - command monitoring (slow command logs, optional New Relic nrmongo)
//   - sessions and multi-document transactions (see RunInTransaction)
//   - index setup at start-up (see EnsureIndexes)
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/deppfellow/mongo-starter/internal/config"
	loggerPkg "github.com/deppfellow/mongo-starter/internal/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// ErrMissingURI is returned when no connection string was configured.
var ErrMissingURI = errors.New("missing database URI: set STARTER_DATABASE__URI")

// dialFunc opens and verifies a client.
type dialFunc func(ctx context.Context) (*mongo.Client, error)

// Database is the lazily-connected MongoDB handle shared by every request.
//
// The zero value is not usable; construct it with New.
type Database struct {
	cfg config.DatabaseConfig
	log *zerolog.Logger

	dial  dialFunc
	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client

	// startSession opens a transactional session; replaced in tests.
	startSession func(ctx context.Context) (txSession, error)
}

// New prepares the database handle. It does not connect; the first call to
// Client (or anything built on it) does.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *Database {
	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(cfg.Database.ConnectTimeout).
		SetServerSelectionTimeout(cfg.Database.ConnectTimeout)

	if cfg.Database.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	if monitor := newCommandMonitor(logger, cfg.Observability, loggerService); monitor != nil {
		clientOpts.SetMonitor(monitor)
	}

	return newWithDialer(cfg.Database, logger, func(ctx context.Context) (*mongo.Client, error) {
		if cfg.Database.URI == "" {
			return nil, ErrMissingURI
		}

		client, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to create mongo client: %w", err)
		}

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		return client, nil
	})
}

func newWithDialer(cfg config.DatabaseConfig, logger *zerolog.Logger, dial dialFunc) *Database {
	db := &Database{
		cfg:  cfg,
		log:  logger,
		dial: dial,
	}
	db.startSession = db.startMongoSession
	return db
}

// Client returns the shared client, connecting on first use.
//
// Only one connection attempt is in flight at any time; callers arriving
// while it runs wait for and share its outcome. A failed attempt is not
// cached, so a later call retries.
//
// The attempt is detached from the caller's cancellation and bounded by the
// configured connect timeout instead, so one impatient request cannot fail
// the attempt for everyone sharing it.
func (db *Database) Client(ctx context.Context) (*mongo.Client, error) {
	if client := db.cached(); client != nil {
		return client, nil
	}

	result, err, _ := db.group.Do("connect", func() (any, error) {
		if client := db.cached(); client != nil {
			return client, nil
		}

		dialCtx := context.WithoutCancel(ctx)
		if db.cfg.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(dialCtx, db.cfg.ConnectTimeout)
			defer cancel()
		}

		client, err := db.dial(dialCtx)
		if err != nil {
			return nil, err
		}

		db.mu.Lock()
		db.client = client
		db.mu.Unlock()

		db.log.Info().Str("database", db.cfg.Name).Msg("connected to the database")

		return client, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*mongo.Client), nil
}

func (db *Database) cached() *mongo.Client {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.client
}

// Connected reports whether a client has been established.
func (db *Database) Connected() bool {
	return db.cached() != nil
}

// DB returns the configured database, connecting on first use.
func (db *Database) DB(ctx context.Context) (*mongo.Database, error) {
	client, err := db.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(db.cfg.Name), nil
}

// Collection returns a handle to the named collection, connecting on first use.
func (db *Database) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	mdb, err := db.DB(ctx)
	if err != nil {
		return nil, err
	}
	return mdb.Collection(name), nil
}

// Ping verifies the store is reachable, connecting on first use.
func (db *Database) Ping(ctx context.Context) error {
	client, err := db.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the shared client if one was established.
func (db *Database) Close(ctx context.Context) error {
	db.mu.Lock()
	client := db.client
	db.client = nil
	db.mu.Unlock()

	if client == nil {
		return nil
	}

	db.log.Info().Msg("closing database connection")
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from database: %w", err)
	}
	return nil
}
