package entities

import (
	"encoding/json"
	"time"
)

// PaymentMethod is how the patient pays for a request.
type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPix || m == PaymentMethodCard
}

// PaymentStatus is the internal projection of the gateway payment state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Active payments block the creation of another payment for the same request.
func (s PaymentStatus) Active() bool {
	return s == PaymentStatusPending || s == PaymentStatusApproved
}

// CanMoveTo reports whether a stored status may be replaced by next. Statuses only
// move forward: pending goes anywhere, approved only to refunded, the rest are final.
func (s PaymentStatus) CanMoveTo(next PaymentStatus) bool {
	switch {
	case s == next:
		return true
	case s == PaymentStatusPending:
		return true
	case s == PaymentStatusApproved:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// Payment is owned by the reconciliation engine and references its request by id only.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (request_id-index): request_id
//   - GSI2 (external_id-index): external_id
//
// GatewayPayloadRaw keeps the last gateway response body for traceability.
// Version is bumped on every write; updates carry the version they were read at.
type Payment struct {
	ID           string        `json:"id"`
	RequestID    string        `json:"request_id"`
	UserID       string        `json:"user_id"`
	Amount       Money         `json:"-"`
	Method       PaymentMethod `json:"method"`
	ExternalID   *string       `json:"external_id,omitempty"`
	Status       PaymentStatus `json:"status"`
	StatusDetail string        `json:"status_detail,omitempty"`

	PixQRCode       string `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string `json:"pix_qr_code_base64,omitempty"`
	PixTicketURL    string `json:"pix_ticket_url,omitempty"`

	GatewayPayloadRaw json.RawMessage `json:"gateway_payload_raw,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AttemptState tracks an idempotent payment creation keyed by correlation id.
type AttemptState string

const (
	AttemptStateInProgress AttemptState = "in_progress"
	AttemptStateCompleted  AttemptState = "completed"
	AttemptStateFailed     AttemptState = "failed"
)

// PaymentAttempt records one CreatePayment call. CorrelationID is the caller's idempotency key
// and is unique: a replay with the same key returns the stored outcome without charging again.
//
// Storage model (DynamoDB):
//   - PK: correlation_id
type PaymentAttempt struct {
	ID            string         `json:"id"`
	CorrelationID string         `json:"correlation_id"`
	RequestID     string         `json:"request_id"`
	PaymentID     string         `json:"payment_id,omitempty"`
	UserID        string         `json:"user_id"`
	Method        PaymentMethod  `json:"method"`
	State         AttemptState   `json:"state"`
	Outcome       map[string]any `json:"outcome,omitempty"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// SavedCard references a card vaulted at the gateway. The CVV is never stored.
type SavedCard struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	GatewayCustomerID string    `json:"gateway_customer_id"`
	GatewayCardID     string    `json:"gateway_card_id"`
	Brand             string    `json:"brand"`
	LastFour          string    `json:"last_four"`
	CreatedAt         time.Time `json:"created_at"`
}
