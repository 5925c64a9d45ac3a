package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

// IPaymentRepository persists payments.
//
// Create fails with ErrActivePaymentExists when the request already has a pending or
// approved payment, and stores version 1. Update releases that guard once the payment
// leaves the active states. Update only succeeds when the stored version still equals
// p.Version (ErrVersionConflict otherwise) and returns the payment with the bumped version.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	Update(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.Payment, error)
}

// IPaymentAttemptRepository stores idempotency records for payment creation.
//
// Reserve inserts the attempt if its correlation id is new and reports created=true.
// When the id already exists it returns the stored attempt and created=false.
type IPaymentAttemptRepository interface {
	Reserve(ctx context.Context, a entities.PaymentAttempt) (stored entities.PaymentAttempt, created bool, err error)
	Update(ctx context.Context, a entities.PaymentAttempt) error
	GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentAttempt, error)
}

type ISavedCardRepository interface {
	Create(ctx context.Context, c entities.SavedCard) (entities.SavedCard, error)
	GetByID(ctx context.Context, id string) (entities.SavedCard, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.SavedCard, error)
}
