package usecase

import (
	"context"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/metrics"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditRecorder writes the audit trail.
//
// Recording is best effort: a failed write is logged and counted in
// medrequest_audit_failures_total but never fails the action that produced it.
// Availability of the lifecycle wins over completeness of the trail; the counter
// is what makes a lost entry visible.
type AuditRecorder struct {
	repo   interfaces.IAuditLogRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuditRecorder(repo interfaces.IAuditLogRepository, logger zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{
		repo:   repo,
		logger: logger.With().Str("component", "audit").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type AuditEntry struct {
	Actor      entities.Actor
	Action     string
	EntityType string
	EntityID   string
	Before     map[string]any
	After      map[string]any
	Metadata   map[string]any
}

// Record never returns an error. The write ignores cancellation of ctx so that a
// client disconnect cannot separate a persisted mutation from its audit entry.
func (a *AuditRecorder) Record(ctx context.Context, e AuditEntry) {
	if a == nil {
		return
	}
	meta := RequestMetaFrom(ctx)
	entry := entities.AuditLog{
		ID:            uuid.NewString(),
		ActorRole:     e.Actor.Role,
		Action:        e.Action,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		Before:        e.Before,
		After:         e.After,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
		CorrelationID: meta.CorrelationID,
		Metadata:      e.Metadata,
		CreatedAt:     a.now(),
	}
	if e.Actor.ID != "" {
		entry.ActorID = entities.StringPtr(e.Actor.ID)
	}

	if a.repo == nil {
		a.logger.Warn().Str("action", e.Action).Str("entity_id", e.EntityID).Msg("audit repository not configured")
		metrics.AuditFailures.Inc()
		return
	}

	if err := a.repo.Append(context.WithoutCancel(ctx), entry); err != nil {
		metrics.AuditFailures.Inc()
		a.logger.Error().Err(err).
			Str("action", e.Action).
			Str("entity_type", e.EntityType).
			Str("entity_id", e.EntityID).
			Msg("failed to write audit entry")
	}
}
