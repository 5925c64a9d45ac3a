package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"medrequest_xpto/internal/adapter/persistence/memory"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/documents"
	"medrequest_xpto/internal/infrastructure/notification"
	"medrequest_xpto/internal/infrastructure/pricing"
	"medrequest_xpto/internal/infrastructure/signing"
	"medrequest_xpto/internal/infrastructure/storage"
	"medrequest_xpto/internal/infrastructure/video"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	patient = entities.Actor{ID: "patient-1", Role: entities.RolePatient, Name: "Maria da Silva"}
	other   = entities.Actor{ID: "patient-2", Role: entities.RolePatient, Name: "Joana Souza"}
	doctor  = entities.Actor{ID: "doctor-1", Role: entities.RoleDoctor, Name: "Dr. Joao Pereira", CRM: "12345-SP"}
	doctor2 = entities.Actor{ID: "doctor-2", Role: entities.RoleDoctor, Name: "Dra. Ana Lima", CRM: "54321-SP"}
	admin   = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin, Name: "Admin"}
)

// fakeGateway mimics Mercado Pago: every charge gets an id and a remote status that
// GetStatus reports until the test changes it.
type fakeGateway struct {
	mu        sync.Mutex
	status    string
	chargeErr error
	statusErr error
	sigErr    error
	charges   []interfaces.ChargeRequest
	remote    map[string]interfaces.GatewayPaymentStatus
	tokens    []string

	// onCharge runs after the charge exists remotely and before CreateCharge returns.
	onCharge func(externalID string)
}

var _ interfaces.IPaymentGateway = (*fakeGateway)(nil)

func newFakeGateway(status string) *fakeGateway {
	return &fakeGateway{status: status, remote: make(map[string]interfaces.GatewayPaymentStatus)}
}

func (g *fakeGateway) CreateCharge(_ context.Context, req interfaces.ChargeRequest) (interfaces.ChargeResult, error) {
	g.mu.Lock()
	if g.chargeErr != nil {
		g.mu.Unlock()
		return interfaces.ChargeResult{}, g.chargeErr
	}
	g.charges = append(g.charges, req)
	id := fmt.Sprintf("mp-%d", len(g.charges))
	g.remote[id] = interfaces.GatewayPaymentStatus{ExternalID: id, Status: g.status, ExternalReference: req.ExternalReference}
	res := interfaces.ChargeResult{ExternalID: id, Status: g.status}
	if req.Method == entities.PaymentMethodPix {
		res.PixQRCode = "00020126-pix-" + id
	}
	hook := g.onCharge
	g.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	return res, nil
}

func (g *fakeGateway) GetStatus(_ context.Context, externalID string) (interfaces.GatewayPaymentStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		err := g.statusErr
		g.statusErr = nil
		return interfaces.GatewayPaymentStatus{}, err
	}
	s, ok := g.remote[externalID]
	if !ok {
		return interfaces.GatewayPaymentStatus{}, errors.New("payment not found at gateway")
	}
	return s, nil
}

func (g *fakeGateway) CreateCardToken(_ context.Context, customerID, cardID, securityCode string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tok := "tok-" + customerID + "-" + cardID
	g.tokens = append(g.tokens, tok)
	return tok, nil
}

func (g *fakeGateway) VerifyWebhookSignature(interfaces.WebhookSignature) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sigErr
}

func (g *fakeGateway) setRemote(externalID, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.remote[externalID]
	s.ExternalID = externalID
	s.Status = status
	g.remote[externalID] = s
}

func (g *fakeGateway) chargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

type aiGateFunc func(ctx context.Context, in interfaces.AnalysisInput) (interfaces.AnalysisResult, error)

func (f aiGateFunc) Analyze(ctx context.Context, in interfaces.AnalysisInput) (interfaces.AnalysisResult, error) {
	return f(ctx, in)
}

func readableGate() interfaces.IAIGate {
	return aiGateFunc(func(context.Context, interfaces.AnalysisInput) (interfaces.AnalysisResult, error) {
		return interfaces.AnalysisResult{Readable: true, Summary: "legible", RiskLevel: "low"}, nil
	})
}

type failingStorage struct{ err error }

func (f failingStorage) Put(context.Context, string, []byte, string) (string, error) {
	return "", f.err
}

type harness struct {
	store    *memory.Store
	gateway  *fakeGateway
	docs     *storage.MemoryStorage
	requests *RequestUseCase
	payments *PaymentUseCase
	verify   *VerificationUseCase
}

type harnessOption func(*RequestUseCaseDeps, *RequestPolicy)

func withStorage(s interfaces.IDocumentStorage) harnessOption {
	return func(d *RequestUseCaseDeps, _ *RequestPolicy) { d.Storage = s }
}

func withAutoDeliver() harnessOption {
	return func(_ *RequestUseCaseDeps, p *RequestPolicy) { p.AutoDeliver = true }
}

func withAsyncAnalysis() harnessOption {
	return func(_ *RequestUseCaseDeps, p *RequestPolicy) { p.AnalysisSync = false }
}

// withPrices overrides the default table with extra "type:subtype=amount" entries.
func withPrices(t *testing.T, raw string) harnessOption {
	t.Helper()
	base, err := pricing.Parse(pricing.DefaultTable)
	require.NoError(t, err)
	extra, err := pricing.Parse(raw)
	require.NoError(t, err)
	return func(d *RequestUseCaseDeps, _ *RequestPolicy) { d.Prices = pricing.NewTable(base, extra) }
}

// failingPaymentUpdates lets every payment write through except Update.
type failingPaymentUpdates struct {
	interfaces.IPaymentRepository
	err error
}

func (f failingPaymentUpdates) Update(context.Context, entities.Payment) (entities.Payment, error) {
	return entities.Payment{}, f.err
}

func newHarness(t *testing.T, gate interfaces.IAIGate, opts ...harnessOption) *harness {
	t.Helper()
	store := memory.NewStore()
	entries, err := pricing.Parse(pricing.DefaultTable)
	require.NoError(t, err)

	logger := zerolog.Nop()
	audit := NewAuditRecorder(store.Audit, logger)
	docs := storage.NewMemoryStorage("")
	deps := RequestUseCaseDeps{
		Repo:     store.Requests,
		AIGate:   gate,
		Prices:   pricing.NewTable(entries),
		Renderer: documents.NewTextRenderer("https://verify.test"),
		Signer:   signing.NewHMACSigner("test-secret"),
		Storage:  docs,
		Notifier: notification.NewLogSender(logger),
		Video:    video.NewStaticRoomProvider("https://meet.test"),
		Audit:    audit,
	}
	policy := RequestPolicy{AnalysisSync: true}
	for _, o := range opts {
		o(&deps, &policy)
	}
	requests := NewRequestUseCase(deps, policy, logger)

	gw := newFakeGateway("pending")
	payments := NewPaymentUseCase(PaymentUseCaseDeps{
		Repo:      store.Payments,
		Attempts:  store.Attempts,
		Events:    store.Events,
		Cards:     store.Cards,
		Requests:  store.Requests,
		Gateway:   gw,
		Confirmer: requests,
		Audit:     audit,
	}, PaymentPolicy{}, logger)

	return &harness{
		store:    store,
		gateway:  gw,
		docs:     docs,
		requests: requests,
		payments: payments,
		verify:   NewVerificationUseCase(store.Requests, audit, logger),
	}
}

func (h *harness) request(t *testing.T, id string) entities.MedicalRequest {
	t.Helper()
	r, err := h.store.Requests.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)
	return r
}

func (h *harness) auditActions(t *testing.T, entityType, id string) []string {
	t.Helper()
	logs, err := h.store.Audit.ListByEntity(context.Background(), entityType, id)
	require.NoError(t, err)
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Action)
	}
	return out
}

func count(actions []string, action string) int {
	n := 0
	for _, a := range actions {
		if a == action {
			n++
		}
	}
	return n
}

// inReview submits a prescription without images, which skips the AI gate.
func (h *harness) inReview(t *testing.T, subtype string) entities.MedicalRequest {
	t.Helper()
	res, err := h.requests.Submit(context.Background(), patient, SubmitInput{
		Type:        entities.RequestTypePrescription,
		Subtype:     subtype,
		Medications: []string{"Losartana 50mg"},
	})
	require.NoError(t, err)
	require.Equal(t, entities.RequestStatusInReview, res.Request.Status)
	return res.Request
}

// paid drives a prescription to paid with an immediately approved card charge.
func (h *harness) paid(t *testing.T) entities.MedicalRequest {
	t.Helper()
	r := h.inReview(t, "simples")
	_, err := h.requests.Approve(context.Background(), doctor, r.ID, ApproveInput{})
	require.NoError(t, err)

	h.gateway.mu.Lock()
	h.gateway.status = "approved"
	h.gateway.mu.Unlock()
	_, err = h.payments.CreatePayment(context.Background(), patient, CreatePaymentInput{
		RequestID: r.ID, Method: entities.PaymentMethodCard, Token: "card-tok", PaymentMethodID: "visa", CorrelationID: "paid-" + r.ID,
	})
	require.NoError(t, err)
	got := h.request(t, r.ID)
	require.Equal(t, entities.RequestStatusPaid, got.Status)
	return got
}
