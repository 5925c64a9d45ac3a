package interfaces

import (
	"context"
	"time"

	"medrequest_xpto/internal/domain/entities"
)

type ClaimResult int

const (
	// ClaimAcquired means the caller owns the event and must process it.
	ClaimAcquired ClaimResult = iota
	// ClaimProcessed means the event was already handled.
	ClaimProcessed
	// ClaimBusy means another worker holds a live claim.
	ClaimBusy
)

// IWebhookEventRepository deduplicates gateway notifications by external event id.
//
// Claim inserts the event, or takes over an unprocessed one whose claim is older than
// staleBefore. The check and the write are atomic.
type IWebhookEventRepository interface {
	Claim(ctx context.Context, ev entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, ClaimResult, error)
	MarkProcessed(ctx context.Context, externalEventID string, processingError string) error
	Release(ctx context.Context, externalEventID string) error
	GetByExternalEventID(ctx context.Context, externalEventID string) (entities.WebhookEvent, error)
}
