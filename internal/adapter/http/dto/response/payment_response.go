package response

import (
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"
)

type PaymentResponse struct {
	ID              string     `json:"id"`
	RequestID       string     `json:"request_id"`
	Amount          float64    `json:"amount"`
	Method          string     `json:"method"`
	ExternalID      *string    `json:"external_id,omitempty"`
	Status          string     `json:"status"`
	StatusDetail    string     `json:"status_detail,omitempty"`
	PixQRCode       string     `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string     `json:"pix_qr_code_base64,omitempty"`
	PixTicketURL    string     `json:"pix_ticket_url,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Replayed        bool       `json:"replayed,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		RequestID:       p.RequestID,
		Amount:          p.Amount.Float64(),
		Method:          string(p.Method),
		ExternalID:      p.ExternalID,
		Status:          string(p.Status),
		StatusDetail:    p.StatusDetail,
		PixQRCode:       p.PixQRCode,
		PixQRCodeBase64: p.PixQRCodeBase64,
		PixTicketURL:    p.PixTicketURL,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromPaymentResult(r usecase.PaymentResult) PaymentResponse {
	res := FromPayment(r.Payment)
	res.Replayed = r.Replayed
	return res
}

func FromPayments(list []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPayment(p))
	}
	return out
}

type SavedCardResponse struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	LastFour  string    `json:"last_four"`
	CreatedAt time.Time `json:"created_at"`
}

func FromSavedCards(list []entities.SavedCard) []SavedCardResponse {
	out := make([]SavedCardResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromSavedCard(c))
	}
	return out
}

func FromSavedCard(c entities.SavedCard) SavedCardResponse {
	return SavedCardResponse{ID: c.ID, Brand: c.Brand, LastFour: c.LastFour, CreatedAt: c.CreatedAt}
}

type WebhookResponse struct {
	Duplicate     bool   `json:"duplicate,omitempty"`
	Ignored       bool   `json:"ignored,omitempty"`
	Applied       bool   `json:"applied,omitempty"`
	PaymentID     string `json:"payment_id,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookResponse {
	return WebhookResponse{
		Duplicate:     r.Duplicate,
		Ignored:       r.Ignored,
		Applied:       r.Applied,
		PaymentID:     r.PaymentID,
		PaymentStatus: string(r.PaymentStatus),
	}
}

type PriceResponse struct {
	ProductType string  `json:"product_type"`
	Subtype     string  `json:"subtype"`
	Price       float64 `json:"price"`
}

func FromPrices(list []entities.PriceEntry) []PriceResponse {
	out := make([]PriceResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromPrice(e))
	}
	return out
}

func FromPrice(e entities.PriceEntry) PriceResponse {
	return PriceResponse{ProductType: string(e.ProductType), Subtype: e.Subtype, Price: e.Price.Float64()}
}
