package usecase

import "errors"

// Error kinds. Concrete errors below are classified by one or more kinds so handlers can
// map them with errors.Is without knowing every concrete error.
var (
	ErrValidation      = errors.New("validation")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrExternalFailure = errors.New("external failure")
	ErrFatal           = errors.New("fatal")
)

type classifiedError struct {
	msg   string
	kinds []error
}

func (e *classifiedError) Error() string { return e.msg }

func (e *classifiedError) Is(target error) bool {
	for _, k := range e.kinds {
		if k == target {
			return true
		}
	}
	return false
}

func newError(msg string, kinds ...error) error {
	return &classifiedError{msg: msg, kinds: kinds}
}

var (
	ErrRequestNotFound       = newError("medical request not found", ErrNotFound)
	ErrPaymentNotFound       = newError("payment not found", ErrNotFound)
	ErrSavedCardNotFound     = newError("saved card not found", ErrNotFound)
	ErrPriceNotConfigured    = newError("price not configured for product", ErrFatal, ErrNotFound)
	ErrInvalidRequestID      = newError("invalid request id", ErrValidation)
	ErrInvalidRequestType    = newError("invalid request type", ErrValidation)
	ErrInvalidSubtype        = newError("invalid subtype", ErrValidation)
	ErrInvalidPatient        = newError("invalid patient", ErrValidation)
	ErrMissingPayload        = newError("request payload is incomplete for its type", ErrValidation)
	ErrReasonRequired        = newError("reason is required", ErrValidation)
	ErrInvalidPaymentMethod  = newError("invalid payment method", ErrValidation)
	ErrCorrelationIDRequired = newError("correlation id is required", ErrValidation)
	ErrCardTokenRequired     = newError("card token is required", ErrValidation)
	ErrSecurityCodeRequired  = newError("security code is required", ErrValidation)
	ErrInvalidPayerEmail     = newError("invalid payer email", ErrValidation)
	ErrSigningInputRequired  = newError("signed document url or certificate is required", ErrValidation)
	ErrInvalidWebhook        = newError("invalid webhook notification", ErrValidation)
	ErrForbiddenRole         = newError("role not allowed for this action", ErrForbidden)
	ErrNotOwner              = newError("actor does not own this request", ErrForbidden)
	ErrIllegalTransition     = newError("action not allowed in current status", ErrInvalidState)
	ErrPriceNotSet           = newError("request has no price", ErrInvalidState)
	ErrDocumentNotStored     = newError("signed document was not stored", ErrInvalidState)
	ErrConcurrentUpdate      = newError("request was modified concurrently", ErrConflict)
	ErrPaymentAlreadyActive  = newError("payment already processed for this request", ErrConflict)
	ErrAttemptInProgress     = newError("payment attempt already processing", ErrConflict)
	ErrCorrelationIDReused   = newError("correlation id used for another request", ErrConflict)
	ErrWebhookBusy           = newError("webhook event is being processed", ErrConflict)
	ErrInvalidSignature      = newError("invalid webhook signature", ErrUnauthorized)
	ErrVerificationFailed    = newError("verification failed", ErrUnauthorized)
	ErrGatewayUnavailable    = newError("payment gateway failure", ErrExternalFailure)
	ErrStorageUnavailable    = newError("document storage failure", ErrExternalFailure)
	ErrSigningUnavailable    = newError("signing service failure", ErrExternalFailure)
	ErrVideoUnavailable      = newError("video room provider failure", ErrExternalFailure)
	ErrGatewayNotConfigured  = newError("payment gateway not configured", ErrFatal)
)

// wrapKind keeps the cause of an external failure reachable with errors.Is/As.
func wrapKind(kind error, cause error) error {
	return errors.Join(kind, cause)
}
