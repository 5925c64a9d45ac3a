package request

import (
	"encoding/json"
	"errors"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"
)

var ErrInvalidPrice = errors.New("invalid price")

// CreatePaymentRequest never carries an amount: the charge always uses the request's stored price.
type CreatePaymentRequest struct {
	RequestID       string `json:"request_id" binding:"required"`
	Method          string `json:"method" binding:"required"`
	Token           string `json:"token"`
	PaymentMethodID string `json:"payment_method_id"`
	Installments    int    `json:"installments"`
	PayerEmail      string `json:"payer_email"`
	CorrelationID   string `json:"correlation_id"`
}

// ToInput prefers the Idempotency-Key header over the body correlation id.
func (r CreatePaymentRequest) ToInput(idempotencyKey string) usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		RequestID:       strings.TrimSpace(r.RequestID),
		Method:          entities.PaymentMethod(strings.ToLower(strings.TrimSpace(r.Method))),
		Token:           strings.TrimSpace(r.Token),
		PaymentMethodID: strings.TrimSpace(r.PaymentMethodID),
		Installments:    r.Installments,
		PayerEmail:      strings.TrimSpace(r.PayerEmail),
		CorrelationID:   ResolveCorrelationID(idempotencyKey, r.CorrelationID),
	}
}

type SavedCardPaymentRequest struct {
	RequestID     string `json:"request_id" binding:"required"`
	SavedCardID   string `json:"saved_card_id" binding:"required"`
	SecurityCode  string `json:"security_code"`
	Installments  int    `json:"installments"`
	PayerEmail    string `json:"payer_email"`
	CorrelationID string `json:"correlation_id"`
}

func (r SavedCardPaymentRequest) ToInput(idempotencyKey string) usecase.SavedCardPaymentInput {
	return usecase.SavedCardPaymentInput{
		RequestID:     strings.TrimSpace(r.RequestID),
		SavedCardID:   strings.TrimSpace(r.SavedCardID),
		SecurityCode:  strings.TrimSpace(r.SecurityCode),
		Installments:  r.Installments,
		PayerEmail:    strings.TrimSpace(r.PayerEmail),
		CorrelationID: ResolveCorrelationID(idempotencyKey, r.CorrelationID),
	}
}

type SaveCardRequest struct {
	GatewayCustomerID string `json:"gateway_customer_id" binding:"required"`
	GatewayCardID     string `json:"gateway_card_id" binding:"required"`
	Brand             string `json:"brand"`
	LastFour          string `json:"last_four"`
}

func (r SaveCardRequest) ToInput() usecase.SaveCardInput {
	return usecase.SaveCardInput{
		GatewayCustomerID: strings.TrimSpace(r.GatewayCustomerID),
		GatewayCardID:     strings.TrimSpace(r.GatewayCardID),
		Brand:             strings.TrimSpace(r.Brand),
		LastFour:          strings.TrimSpace(r.LastFour),
	}
}

func ResolveCorrelationID(header, body string) string {
	if v := strings.TrimSpace(header); v != "" {
		return v
	}
	return strings.TrimSpace(body)
}

// WebhookRequest is the Mercado Pago notification body. The id fields arrive as
// numbers or strings depending on the notification version.
type WebhookRequest struct {
	ID     json.RawMessage `json:"id"`
	Type   string          `json:"type"`
	Topic  string          `json:"topic"`
	Action string          `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

func (r WebhookRequest) EventID() string { return rawID(r.ID) }

func (r WebhookRequest) DataID() string { return rawID(r.Data.ID) }

// ResolveTopic falls back to the legacy "topic" field.
func (r WebhookRequest) ResolveTopic() string {
	if v := strings.TrimSpace(r.Type); v != "" {
		return v
	}
	return strings.TrimSpace(r.Topic)
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

type PriceRequest struct {
	ProductType string      `json:"product_type" binding:"required"`
	Subtype     string      `json:"subtype"`
	Price       json.Number `json:"price" binding:"required"`
}

func (r PriceRequest) ResolvePrice() (entities.Money, error) {
	m, err := entities.ParseMoney(r.Price.String())
	if err != nil || m.IsZero() {
		return entities.Money{}, ErrInvalidPrice
	}
	return m, nil
}
