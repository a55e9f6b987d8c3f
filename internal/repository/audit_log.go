package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mongo-starter/internal/database"
	"github.com/deppfellow/mongo-starter/internal/model"
)

// AuditLogRepository appends to and lists the auditlogs collection.
type AuditLogRepository struct {
	*Collection[model.AuditLog]
}

func NewAuditLogRepository(db *database.Database) *AuditLogRepository {
	return &AuditLogRepository{Collection: NewCollection[model.AuditLog](db, model.AuditLogsCollection)}
}

// Create inserts entry and sets its ID.
func (r *AuditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	id, err := r.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	entry.ID = id
	return nil
}
