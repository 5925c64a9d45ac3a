package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"medrequest_xpto/internal/adapter/http/handlers/mocks"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_CreatePayment(t *testing.T) {
	amount, _ := entities.NewMoneyFromCents(4990)
	created := entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Method: entities.PaymentMethodPix, Status: entities.PaymentStatusPending, PixQRCode: "000201"}

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/payments", NewPaymentHandler(uc).CreatePayment)

		w := doRequest(r, http.MethodPost, "/v1/payments", `{"method":"pix"}`, asPatient("pat-1"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("idempotency header wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/payments", NewPaymentHandler(uc).CreatePayment)

		uc.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), usecase.CreatePaymentInput{
			RequestID:     "req-1",
			Method:        entities.PaymentMethodPix,
			PayerEmail:    "a@b.com",
			CorrelationID: "key-1",
		}).Return(usecase.PaymentResult{Payment: created}, nil)

		headers := asPatient("pat-1")
		headers[HeaderIdempotencyKey] = "key-1"
		w := doRequest(r, http.MethodPost, "/v1/payments", `{"request_id":"req-1","method":"PIX","payer_email":"a@b.com","correlation_id":"body-key"}`, headers)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "pay-1" || body["amount"] != 49.9 || body["pix_qr_code"] != "000201" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("replay answers 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/payments", NewPaymentHandler(uc).CreatePayment)

		uc.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.PaymentResult{Payment: created, Replayed: true}, nil)

		w := doRequest(r, http.MethodPost, "/v1/payments", `{"request_id":"req-1","method":"pix","correlation_id":"k"}`, asPatient("pat-1"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("already processed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/payments", NewPaymentHandler(uc).CreatePayment)

		uc.EXPECT().CreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.PaymentResult{}, usecase.ErrPaymentAlreadyActive)

		w := doRequest(r, http.MethodPost, "/v1/payments", `{"request_id":"req-1","method":"pix","correlation_id":"k2"}`, asPatient("pat-1"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "PAYMENT_ALREADY_PROCESSED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_SavedCards(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)
	r := newTestRouter()
	r.POST("/v1/cards", h.SaveCard)
	r.GET("/v1/cards", h.ListCards)
	r.POST("/v1/payments/saved-card", h.PayWithSavedCard)

	uc.EXPECT().SaveCard(gomock.Any(), gomock.Any(), usecase.SaveCardInput{GatewayCustomerID: "cus-1", GatewayCardID: "card-1", Brand: "visa", LastFour: "4242"}).
		Return(entities.SavedCard{ID: "sc-1", Brand: "visa", LastFour: "4242", GatewayCardID: "card-1"}, nil)
	uc.EXPECT().ListSavedCards(gomock.Any(), gomock.Any()).Return([]entities.SavedCard{{ID: "sc-1", Brand: "visa", LastFour: "4242"}}, nil)
	uc.EXPECT().PayWithSavedCard(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.PaymentResult{}, usecase.ErrSavedCardNotFound)

	w := doRequest(r, http.MethodPost, "/v1/cards", `{"gateway_customer_id":"cus-1","gateway_card_id":"card-1","brand":"visa","last_four":"4242"}`, asPatient("pat-1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var card map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &card)
	if _, leaked := card["gateway_card_id"]; leaked {
		t.Fatalf("gateway card id leaked: %s", w.Body.String())
	}

	if w := doRequest(r, http.MethodGet, "/v1/cards", "", asPatient("pat-1")); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/v1/payments/saved-card", `{"request_id":"req-1","saved_card_id":"sc-x","security_code":"123","correlation_id":"k"}`, asPatient("pat-1")); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPaymentHandler_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)
	r := newTestRouter()
	r.GET("/v1/payments/:id", h.GetPayment)
	r.GET("/v1/requests/:id/payments", h.ListByRequest)

	uc.EXPECT().GetByID(gomock.Any(), gomock.Any(), "pay-1").Return(entities.Payment{}, usecase.ErrNotOwner)
	uc.EXPECT().ListByRequestID(gomock.Any(), gomock.Any(), "req-1").Return([]entities.Payment{{ID: "pay-2"}, {ID: "pay-1"}}, nil)

	if w := doRequest(r, http.MethodGet, "/v1/payments/pay-1", "", asPatient("pat-2")); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	w := doRequest(r, http.MethodGet, "/v1/requests/req-1/payments", "", asPatient("pat-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 2 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
