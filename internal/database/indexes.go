package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes each collection needs.
var collectionIndexes = map[string][]mongo.IndexModel{
	model.UsersCollection: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_users_email"),
		},
	},
	model.AuditLogsCollection: {
		{Keys: bson.D{{Key: "action", Value: 1}}, Options: options.Index().SetName("auditlogs_action")},
		{Keys: bson.D{{Key: "at", Value: 1}}, Options: options.Index().SetName("auditlogs_at")},
	},
}

// EnsureIndexes creates any missing indexes. CreateMany is idempotent for
// indexes that already exist with the same definition.
func EnsureIndexes(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	mdb, err := db.DB(ctx)
	if err != nil {
		return err
	}

	for collection, models := range collectionIndexes {
		names, err := mdb.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("creating indexes on %s: %w", collection, err)
		}

		logger.Info().
			Str("collection", collection).
			Strs("indexes", names).
			Msg("database indexes up to date")
	}

	return nil
}
