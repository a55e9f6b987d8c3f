package service

import (
	"context"
	"time"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/deppfellow/mongo-starter/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type auditLogStore interface {
	pagination.Source[model.AuditLog]
	Create(ctx context.Context, entry *model.AuditLog) error
}

type AuditLogService struct {
	auditLogs auditLogStore
	now       func() time.Time
}

func NewAuditLogService(repos *repository.Repositories) *AuditLogService {
	return &AuditLogService{auditLogs: repos.AuditLogs, now: time.Now}
}

// Record appends an entry. When ctx belongs to a transaction the write joins it.
func (s *AuditLogService) Record(ctx context.Context, action string, userID primitive.ObjectID, email string, meta map[string]any) error {
	return s.auditLogs.Create(ctx, model.NewAuditLog(action, userID, email, meta, s.now().UTC()))
}

// List returns entries newest first, optionally restricted to one action.
func (s *AuditLogService) List(ctx context.Context, params pagination.Params, action string) (*pagination.Result[model.AuditLog], error) {
	var filter any
	if action != "" {
		filter = bson.M{"action": action}
	}
	return pagination.Paginate[model.AuditLog](ctx, s.auditLogs, params, filter, pagination.SortBy("at", true))
}
