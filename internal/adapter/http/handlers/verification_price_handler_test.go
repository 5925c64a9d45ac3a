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

func TestVerificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIVerificationUseCase(ctrl)
	h := NewVerificationHandler(uc)
	r := newTestRouter()
	r.GET("/v1/verify/:id", h.GetPublic)
	r.POST("/v1/verify/:id", h.GetFull)

	uc.EXPECT().GetPublic(gomock.Any(), "req-1").Return(usecase.PublicView{ID: "req-1", Signed: true, PatientInitials: "M.S."}, nil)
	uc.EXPECT().GetFull(gomock.Any(), "req-1", "0000").Return(usecase.FullView{}, usecase.ErrVerificationFailed)
	uc.EXPECT().GetFull(gomock.Any(), "req-1", "0848").Return(usecase.FullView{
		PublicView:  usecase.PublicView{ID: "req-1", Signed: true},
		PatientName: "Maria Silva",
	}, nil)

	w := doRequest(r, http.MethodGet, "/v1/verify/req-1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var public map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &public)
	if _, leaked := public["patient_name"]; leaked {
		t.Fatalf("public view leaked patient name: %s", w.Body.String())
	}

	if w := doRequest(r, http.MethodPost, "/v1/verify/req-1", `{}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/v1/verify/req-1", `{"access_code":"0000"}`, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPost, "/v1/verify/req-1", `{"access_code":"0848"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var full map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &full)
	if full["patient_name"] != "Maria Silva" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestPriceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPriceUseCase(ctrl)
	h := NewPriceHandler(uc)
	r := newTestRouter()
	r.GET("/v1/prices", h.List)
	r.PUT("/v1/prices", h.Set)

	price, _ := entities.NewMoneyFromCents(8990)
	uc.EXPECT().SetPrice(gomock.Any(), gomock.Any(), entities.RequestTypeExam, "imaging", price).
		Return(entities.PriceEntry{ProductType: entities.RequestTypeExam, Subtype: "imaging", Price: price}, nil)
	uc.EXPECT().ListPrices(gomock.Any()).Return([]entities.PriceEntry{{ProductType: entities.RequestTypeExam, Subtype: "imaging", Price: price}}, nil)

	admin := map[string]string{"X-Actor-ID": "adm-1", "X-Actor-Role": "admin"}
	if w := doRequest(r, http.MethodPut, "/v1/prices", `{"product_type":"exam","subtype":"imaging","price":0}`, admin); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w := doRequest(r, http.MethodPut, "/v1/prices", `{"product_type":"Exam","subtype":"imaging","price":89.90}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/v1/prices", "", admin)
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || len(body) != 1 || body[0]["price"] != 89.9 {
		t.Fatalf("unexpected list: %d %s", w.Code, w.Body.String())
	}
}
