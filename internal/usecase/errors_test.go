package usecase

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	if !errors.Is(ErrPriceNotConfigured, ErrFatal) || !errors.Is(ErrPriceNotConfigured, ErrNotFound) {
		t.Fatalf("expected price not configured to be fatal and not found")
	}
	if errors.Is(ErrPriceNotConfigured, ErrValidation) {
		t.Fatalf("unexpected validation kind")
	}

	wrapped := fmt.Errorf("approve: %w", ErrIllegalTransition)
	if !errors.Is(wrapped, ErrInvalidState) {
		t.Fatalf("expected wrapped error to keep its kind")
	}

	cause := errors.New("timeout")
	joined := wrapKind(ErrGatewayUnavailable, cause)
	if !errors.Is(joined, ErrExternalFailure) || !errors.Is(joined, cause) {
		t.Fatalf("expected joined error to match kind and cause, got %v", joined)
	}
}
