package entities

import (
	"encoding/json"
	"time"
)

// WebhookEvent deduplicates gateway notifications. ExternalEventID is unique: once Processed,
// a redelivery of the same event is a no-op.
//
// Storage model (DynamoDB):
//   - PK: external_event_id
type WebhookEvent struct {
	ID                string          `json:"id"`
	ExternalEventID   string          `json:"external_event_id"`
	ExternalPaymentID string          `json:"external_payment_id"`
	Provider          string          `json:"provider"`
	Topic             string          `json:"topic"`
	Action            string          `json:"action"`
	Payload           json.RawMessage `json:"payload,omitempty"`
	Processed         bool            `json:"processed"`
	ProcessingError   string          `json:"processing_error,omitempty"`
	ClaimedAt         time.Time       `json:"claimed_at"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
