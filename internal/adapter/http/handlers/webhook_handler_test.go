package handlers

import (
	"errors"
	"net/http"
	"testing"

	"medrequest_xpto/internal/adapter/http/handlers/mocks"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestWebhookHandler_Receive(t *testing.T) {
	t.Run("body notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc).Receive)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, n usecase.WebhookNotification) (usecase.WebhookResult, error) {
				if n.EventID != "111" || n.DataID != "999" || n.Topic != "payment" || n.SignatureHeader != "ts=1,v1=abc" || n.RequestID != "rid-1" {
					t.Fatalf("unexpected notification: %+v", n)
				}
				if len(n.Payload) == 0 {
					t.Fatalf("expected raw payload")
				}
				return usecase.WebhookResult{Applied: true, PaymentID: "pay-1", PaymentStatus: entities.PaymentStatusApproved}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/webhooks/mercadopago",
			`{"id":111,"type":"payment","action":"payment.updated","data":{"id":"999"}}`,
			map[string]string{HeaderSignature: "ts=1,v1=abc", "X-Request-ID": "rid-1"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("query string notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc).Receive)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, n usecase.WebhookNotification) (usecase.WebhookResult, error) {
				if n.DataID != "777" || n.Topic != "payment" {
					t.Fatalf("unexpected notification: %+v", n)
				}
				return usecase.WebhookResult{Duplicate: true}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/webhooks/mercadopago?data.id=777&type=payment", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc).Receive)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).Return(usecase.WebhookResult{}, usecase.ErrInvalidSignature)

		w := doRequest(r, http.MethodPost, "/v1/webhooks/mercadopago", `{"data":{"id":"1"}}`, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("retryable failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc).Receive)

		uc.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).
			Return(usecase.WebhookResult{}, errors.Join(usecase.ErrGatewayUnavailable, errors.New("timeout")))

		w := doRequest(r, http.MethodPost, "/v1/webhooks/mercadopago", `{"data":{"id":"1"}}`, nil)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newTestRouter()
		r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc).Receive)

		w := doRequest(r, http.MethodPost, "/v1/webhooks/mercadopago", `{"data":`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
