package interfaces

import (
	"context"
	"encoding/json"

	"medrequest_xpto/internal/domain/entities"
)

type ChargeRequest struct {
	// IdempotencyKey is forwarded to the provider so a retried call never charges twice.
	IdempotencyKey    string
	Amount            entities.Money
	Method            entities.PaymentMethod
	Token             string
	PaymentMethodID   string
	Installments      int
	PayerEmail        string
	Description       string
	ExternalReference string
}

// ChargeResult carries the provider's raw status; the use case maps it.
type ChargeResult struct {
	ExternalID      string
	Status          string
	StatusDetail    string
	PixQRCode       string
	PixQRCodeBase64 string
	PixTicketURL    string
	Raw             json.RawMessage
}

type GatewayPaymentStatus struct {
	ExternalID        string
	Status            string
	StatusDetail      string
	ExternalReference string
	Raw               json.RawMessage
}

// WebhookSignature is what the provider sends to authenticate a notification.
type WebhookSignature struct {
	Header    string
	RequestID string
	DataID    string
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// GetStatus is the source of truth for reconciliation: webhook bodies are only hints.
type IPaymentGateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	GetStatus(ctx context.Context, externalID string) (GatewayPaymentStatus, error)
	CreateCardToken(ctx context.Context, customerID, cardID, securityCode string) (string, error)
	VerifyWebhookSignature(sig WebhookSignature) error
}
