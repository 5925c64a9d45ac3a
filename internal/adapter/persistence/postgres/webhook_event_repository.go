package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
)

const eventCols = `external_event_id, id, external_payment_id, provider, topic, action, payload,
	processed, processing_error, claimed_at, processed_at, created_at, updated_at`

type WebhookEventRepository struct{ db queryable }

var _ interfaces.IWebhookEventRepository = (*WebhookEventRepository)(nil)

// Claim inserts the event or takes over a stale unprocessed claim in one statement.
// When neither happens the existing row decides between processed and busy.
func (r *WebhookEventRepository) Claim(ctx context.Context, ev entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
	var payload []byte
	if len(ev.Payload) > 0 {
		payload = ev.Payload
	}
	claimed, err := scanEvent(r.db.QueryRow(ctx, `INSERT INTO webhook_events (`+eventCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,FALSE,'',$8,NULL,$9,$10)
		ON CONFLICT (external_event_id) DO UPDATE
			SET claimed_at = EXCLUDED.claimed_at, updated_at = EXCLUDED.updated_at
			WHERE webhook_events.processed = FALSE
			  AND (webhook_events.claimed_at IS NULL OR webhook_events.claimed_at <= $11)
		RETURNING `+eventCols,
		ev.ExternalEventID, ev.ID, ev.ExternalPaymentID, ev.Provider, ev.Topic, ev.Action, payload,
		ev.ClaimedAt, ev.CreatedAt, ev.UpdatedAt, staleBefore))
	if err == nil {
		return claimed, interfaces.ClaimAcquired, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}

	existing, err := r.GetByExternalEventID(ctx, ev.ExternalEventID)
	if err != nil {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}
	if existing.Processed {
		return existing, interfaces.ClaimProcessed, nil
	}
	return existing, interfaces.ClaimBusy, nil
}

func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, externalEventID string, processingError string) error {
	tag, err := r.db.Exec(ctx, `UPDATE webhook_events
		SET processed = TRUE, processing_error = $2, processed_at = now(), updated_at = now()
		WHERE external_event_id = $1`, externalEventID, processingError)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (r *WebhookEventRepository) Release(ctx context.Context, externalEventID string) error {
	_, err := r.db.Exec(ctx, `UPDATE webhook_events SET claimed_at = NULL
		WHERE external_event_id = $1 AND processed = FALSE`, externalEventID)
	return err
}

func (r *WebhookEventRepository) GetByExternalEventID(ctx context.Context, externalEventID string) (entities.WebhookEvent, error) {
	ev, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventCols+` FROM webhook_events WHERE external_event_id = $1`, externalEventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.WebhookEvent{}, nil
	}
	return ev, err
}

func scanEvent(row pgx.Row) (entities.WebhookEvent, error) {
	var (
		ev        entities.WebhookEvent
		payload   []byte
		claimedAt *time.Time
	)
	err := row.Scan(&ev.ExternalEventID, &ev.ID, &ev.ExternalPaymentID, &ev.Provider, &ev.Topic, &ev.Action, &payload,
		&ev.Processed, &ev.ProcessingError, &claimedAt, &ev.ProcessedAt, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if claimedAt != nil {
		ev.ClaimedAt = *claimedAt
	}
	if len(payload) > 0 {
		ev.Payload = json.RawMessage(payload)
	}
	return ev, nil
}
