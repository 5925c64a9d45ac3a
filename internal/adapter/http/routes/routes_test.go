package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medrequest_xpto/internal/adapter/http/handlers"
	"medrequest_xpto/internal/adapter/http/handlers/mocks"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIRequestUseCase, *mocks.MockIVerificationUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	requests := mocks.NewMockIRequestUseCase(ctrl)
	payments := mocks.NewMockIPaymentUseCase(ctrl)
	verification := mocks.NewMockIVerificationUseCase(ctrl)
	prices := mocks.NewMockIPriceUseCase(ctrl)

	r := NewRouter(Handlers{
		Requests:     handlers.NewRequestHandler(requests),
		Payments:     handlers.NewPaymentHandler(payments),
		Webhooks:     handlers.NewWebhookHandler(payments),
		Verification: handlers.NewVerificationHandler(verification),
		Prices:       handlers.NewPriceHandler(prices),
	}, Options{Actor: middleware.ActorConfig{AllowHeaders: true}, Logger: zerolog.Nop()})
	return r, requests, verification
}

func TestRouter(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get(middleware.HeaderRequestID) == "" {
			t.Fatalf("expected request id header")
		}
	})

	t.Run("metrics", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("requests need an actor", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/requests/req-1", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("authenticated request reaches handler", func(t *testing.T) {
		r, requests, _ := newTestRouter(t)
		requests.EXPECT().GetByID(gomock.Any(), entities.Actor{ID: "pat-1", Role: entities.RolePatient}, "req-1").
			Return(entities.MedicalRequest{ID: "req-1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/requests/req-1", nil)
		req.Header.Set(middleware.HeaderActorID, "pat-1")
		req.Header.Set(middleware.HeaderActorRole, "patient")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("verification is public", func(t *testing.T) {
		r, _, verification := newTestRouter(t)
		verification.EXPECT().GetPublic(gomock.Any(), "req-1").Return(usecase.PublicView{ID: "req-1"}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/verify/req-1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
