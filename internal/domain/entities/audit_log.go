package entities

import "time"

// AuditLog is an append-only record of a state-affecting action.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (entity_id-index): entity_id
type AuditLog struct {
	ID            string         `json:"id"`
	ActorID       *string        `json:"actor_id,omitempty"`
	ActorRole     Role           `json:"actor_role"`
	Action        string         `json:"action"`
	EntityType    string         `json:"entity_type"`
	EntityID      string         `json:"entity_id"`
	Before        map[string]any `json:"before,omitempty"`
	After         map[string]any `json:"after,omitempty"`
	IPAddress     string         `json:"ip_address,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

const (
	AuditEntityRequest      = "medical_request"
	AuditEntityPayment      = "payment"
	AuditEntityWebhookEvent = "webhook_event"
)
