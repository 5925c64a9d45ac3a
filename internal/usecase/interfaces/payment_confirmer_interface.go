package interfaces

import "context"

// IPaymentConfirmer applies the settled-payment transition to a request.
//
// It is idempotent: applied=false with a nil error means the request was already paid.
type IPaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, requestID, paymentID string) (applied bool, err error)
}
