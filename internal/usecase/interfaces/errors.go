package interfaces

import "errors"

// Errors repositories and gateways report to the use cases. Adapters translate their
// driver-specific failures (DynamoDB conditional checks, Postgres unique violations)
// into these.
var (
	ErrVersionConflict         = errors.New("version conflict")
	ErrDuplicateKey            = errors.New("duplicate key")
	ErrActivePaymentExists     = errors.New("an active payment already exists for this request")
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
)
