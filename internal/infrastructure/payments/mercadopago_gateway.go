package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/rs/zerolog"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidExternalID = errors.New("invalid mercado pago payment id")

// paymentAPI is the part of payment.Client the gateway uses.
type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type cardTokenAPI interface {
	Create(ctx context.Context, request cardtoken.Request) (*cardtoken.Response, error)
}

type MercadoPagoOptions struct {
	AccessToken   string
	WebhookSecret string
	Mock          bool
}

// MercadoPagoGateway implements IPaymentGateway on top of the Mercado Pago SDK.
//
// In mock mode no network call is made: charges are kept in memory and card
// charges are approved immediately, PIX charges stay pending until queried.
type MercadoPagoGateway struct {
	payments      paymentAPI
	cardTokens    cardTokenAPI
	webhookSecret string
	mockMode      bool
	mock          *mockLedger
	logger        zerolog.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts MercadoPagoOptions, logger zerolog.Logger) (*MercadoPagoGateway, error) {
	logger = logger.With().Str("component", "payment.gateway").Logger()
	if opts.Mock {
		logger.Warn().Msg("mock mode enabled")
		return &MercadoPagoGateway{
			webhookSecret: opts.WebhookSecret,
			mockMode:      true,
			mock:          newMockLedger(),
			logger:        logger,
		}, nil
	}

	if opts.AccessToken == "" {
		logger.Error().Msg("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		logger.Error().Err(err).Msg("failed creating sdk config")
		return nil, err
	}
	logger.Info().Msg("Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:      payment.NewClient(cfg),
		cardTokens:    cardtoken.NewClient(cfg),
		webhookSecret: opts.WebhookSecret,
		logger:        logger,
	}, nil
}

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req interfaces.ChargeRequest) (interfaces.ChargeResult, error) {
	if g != nil && g.mockMode {
		return g.mock.create(req), nil
	}
	if g == nil || g.payments == nil {
		return interfaces.ChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	log := g.logger.With().Str("external_reference", req.ExternalReference).Str("method", string(req.Method)).Logger()
	log.Info().Str("amount", req.Amount.String()).Msg("create charge start")

	resp, err := g.payments.Create(ctx, toPaymentRequest(req))
	if err != nil {
		log.Error().Err(err).Msg("sdk create failed")
		return interfaces.ChargeResult{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("response marshal failed")
		return interfaces.ChargeResult{}, err
	}
	log.Info().Int("provider_payment_id", resp.ID).Str("provider_status", resp.Status).Msg("create charge success")

	td := resp.PointOfInteraction.TransactionData
	return interfaces.ChargeResult{
		ExternalID:      strconv.Itoa(resp.ID),
		Status:          resp.Status,
		StatusDetail:    resp.StatusDetail,
		PixQRCode:       td.QRCode,
		PixQRCodeBase64: td.QRCodeBase64,
		PixTicketURL:    td.TicketURL,
		Raw:             raw,
	}, nil
}

func (g *MercadoPagoGateway) GetStatus(ctx context.Context, externalID string) (interfaces.GatewayPaymentStatus, error) {
	if g != nil && g.mockMode {
		return g.mock.status(externalID), nil
	}
	if g == nil || g.payments == nil {
		return interfaces.GatewayPaymentStatus{}, ErrMercadoPagoGatewayNotConfigured
	}
	id, err := strconv.Atoi(strings.TrimSpace(externalID))
	if err != nil {
		return interfaces.GatewayPaymentStatus{}, fmt.Errorf("%w: %q", ErrInvalidExternalID, externalID)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.logger.Error().Err(err).Str("provider_payment_id", externalID).Msg("sdk get failed")
		return interfaces.GatewayPaymentStatus{}, err
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return interfaces.GatewayPaymentStatus{}, err
	}
	return interfaces.GatewayPaymentStatus{
		ExternalID:        strconv.Itoa(resp.ID),
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		Raw:               raw,
	}, nil
}

// CreateCardToken issues a single-use token for a card vaulted under a gateway customer.
func (g *MercadoPagoGateway) CreateCardToken(ctx context.Context, customerID, cardID, securityCode string) (string, error) {
	if g != nil && g.mockMode {
		return "mock-token-" + uuid.NewString(), nil
	}
	if g == nil || g.cardTokens == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	resp, err := g.cardTokens.Create(ctx, cardtoken.Request{
		CustomerID:   customerID,
		CardID:       cardID,
		SecurityCode: securityCode,
	})
	if err != nil {
		g.logger.Error().Err(err).Str("customer_id", customerID).Msg("sdk card token failed")
		return "", err
	}
	return resp.ID, nil
}

// VerifyWebhookSignature checks the x-signature header. Without a configured secret
// only mock mode accepts notifications.
func (g *MercadoPagoGateway) VerifyWebhookSignature(sig interfaces.WebhookSignature) error {
	if g == nil {
		return ErrMercadoPagoGatewayNotConfigured
	}
	if g.webhookSecret == "" {
		if g.mockMode {
			return nil
		}
		return interfaces.ErrInvalidWebhookSignature
	}
	return VerifySignature(g.webhookSecret, sig)
}

func toPaymentRequest(req interfaces.ChargeRequest) payment.Request {
	out := payment.Request{
		TransactionAmount: req.Amount.Float64(),
		Description:       req.Description,
		ExternalReference: req.ExternalReference,
		Payer:             &payment.PayerRequest{Email: req.PayerEmail},
		Metadata:          map[string]any{"idempotency_key": req.IdempotencyKey},
	}
	switch req.Method {
	case entities.PaymentMethodPix:
		out.PaymentMethodID = "pix"
	default:
		out.PaymentMethodID = req.PaymentMethodID
		out.Token = req.Token
		out.Installments = req.Installments
		if out.Installments <= 0 {
			out.Installments = 1
		}
	}
	return out
}

// mockLedger remembers mock charges so status queries stay consistent.
type mockLedger struct {
	mu      sync.Mutex
	seq     int64
	charges map[string]interfaces.GatewayPaymentStatus
}

func newMockLedger() *mockLedger {
	return &mockLedger{charges: make(map[string]interfaces.GatewayPaymentStatus)}
}

func (m *mockLedger) create(req interfaces.ChargeRequest) interfaces.ChargeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := strconv.FormatInt(time.Now().UTC().UnixNano()+m.seq, 10)

	status, detail := "approved", "accredited"
	res := interfaces.ChargeResult{ExternalID: id}
	if req.Method == entities.PaymentMethodPix {
		status, detail = "pending", "pending_waiting_transfer"
		res.PixQRCode = "00020126mock" + id
		res.PixTicketURL = "https://mock.mercadopago.local/pix/" + id
	}
	res.Status = status
	res.StatusDetail = detail
	res.Raw, _ = json.Marshal(map[string]any{
		"id":                 id,
		"status":             status,
		"status_detail":      detail,
		"external_reference": req.ExternalReference,
		"date_created":       time.Now().UTC().Format(time.RFC3339Nano),
	})

	m.charges[id] = interfaces.GatewayPaymentStatus{
		ExternalID:        id,
		Status:            status,
		StatusDetail:      detail,
		ExternalReference: req.ExternalReference,
		Raw:               res.Raw,
	}
	return res
}

// status reports pending PIX charges as paid: the mock stands in for a payer
// completing the transfer before the notification arrives.
func (m *mockLedger) status(externalID string) interfaces.GatewayPaymentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.charges[externalID]
	if !ok {
		return interfaces.GatewayPaymentStatus{ExternalID: externalID, Status: "approved", StatusDetail: "accredited"}
	}
	if st.Status == "pending" {
		st.Status, st.StatusDetail = "approved", "accredited"
		m.charges[externalID] = st
	}
	return st
}
