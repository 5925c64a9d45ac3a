package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

// IAuditLogRepository is append-only.
type IAuditLogRepository interface {
	Append(ctx context.Context, entry entities.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]entities.AuditLog, error)
}
