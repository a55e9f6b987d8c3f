package handler

import (
	"context"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/validation"
	"github.com/labstack/echo/v4"
)

type auditLogService interface {
	List(ctx context.Context, params pagination.Params, action string) (*pagination.Result[model.AuditLog], error)
}

type AuditLogHandler struct {
	Handler
	auditLogs auditLogService
}

func NewAuditLogHandler(s *server.Server, auditLogs auditLogService) *AuditLogHandler {
	return &AuditLogHandler{
		Handler:   NewHandler(s),
		auditLogs: auditLogs,
	}
}

type AuditLogListResponse struct {
	OK bool `json:"ok"`
	*pagination.Result[model.AuditLog]
}

// GetAuditLogs handles GET /api/audit-logs?page=&limit=&action=.
func (h *AuditLogHandler) GetAuditLogs(c echo.Context, _ *validation.Empty) (*AuditLogListResponse, error) {
	var query validation.AuditLogQuery
	if err := validation.ParseQuery(c.Request().URL.String(), &query); err != nil {
		return nil, err
	}

	var action string
	if query.Action != nil {
		action = *query.Action
	}

	result, err := h.auditLogs.List(c.Request().Context(), query.Params(), action)
	if err != nil {
		return nil, err
	}
	return &AuditLogListResponse{OK: true, Result: result}, nil
}
