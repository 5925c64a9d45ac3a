package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/metrics"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxCorrelationIDLen = 128
	defaultClaimTTL     = 2 * time.Minute
	maxStoreAttempts    = 3
	gatewayErrorDetail  = "gateway_error"

	auditPaymentCreated       = "payment.created"
	auditPaymentFailed        = "payment.failed"
	auditPaymentStatusChanged = "payment.status_changed"
	auditSavedCardCreated     = "saved_card.created"
)

type CreatePaymentInput struct {
	RequestID string
	Method    entities.PaymentMethod
	// Token is the card token produced by the gateway's client-side tokenization.
	Token string
	// PaymentMethodID is the card brand as the gateway names it (visa, master...).
	PaymentMethodID string
	Installments    int
	PayerEmail      string
	// CorrelationID is the caller's idempotency key.
	CorrelationID string
}

type SavedCardPaymentInput struct {
	RequestID     string
	SavedCardID   string
	SecurityCode  string
	Installments  int
	PayerEmail    string
	CorrelationID string
}

type SaveCardInput struct {
	GatewayCustomerID string
	GatewayCardID     string
	Brand             string
	LastFour          string
}

// PaymentResult reports whether the payment was created now or replayed from a
// previous call with the same correlation id.
type PaymentResult struct {
	Payment  entities.Payment
	Replayed bool
}

// IPaymentUseCase encapsulates payment creation and gateway reconciliation.
//
// Requested behavior:
//   - Create at most one charge per correlation id and at most one active payment per request.
//   - Apply gateway notifications at most once per event, trusting only the gateway's status API.
type IPaymentUseCase interface {
	CreatePayment(ctx context.Context, actor entities.Actor, in CreatePaymentInput) (PaymentResult, error)
	PayWithSavedCard(ctx context.Context, actor entities.Actor, in SavedCardPaymentInput) (PaymentResult, error)
	SaveCard(ctx context.Context, actor entities.Actor, in SaveCardInput) (entities.SavedCard, error)
	ListSavedCards(ctx context.Context, actor entities.Actor) ([]entities.SavedCard, error)
	ProcessWebhook(ctx context.Context, n WebhookNotification) (WebhookResult, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Payment, error)
	ListByRequestID(ctx context.Context, actor entities.Actor, requestID string) ([]entities.Payment, error)
}

type PaymentUseCaseDeps struct {
	Repo      interfaces.IPaymentRepository
	Attempts  interfaces.IPaymentAttemptRepository
	Events    interfaces.IWebhookEventRepository
	Cards     interfaces.ISavedCardRepository
	Requests  interfaces.IMedicalRequestRepository
	Gateway   interfaces.IPaymentGateway
	Confirmer interfaces.IPaymentConfirmer
	Audit     *AuditRecorder
}

type PaymentPolicy struct {
	// WebhookClaimTTL is how long a claimed, unprocessed webhook event stays locked.
	WebhookClaimTTL time.Duration
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	attempts  interfaces.IPaymentAttemptRepository
	events    interfaces.IWebhookEventRepository
	cards     interfaces.ISavedCardRepository
	requests  interfaces.IMedicalRequestRepository
	gateway   interfaces.IPaymentGateway
	confirmer interfaces.IPaymentConfirmer
	audit     *AuditRecorder
	claimTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(deps PaymentUseCaseDeps, policy PaymentPolicy, logger zerolog.Logger) *PaymentUseCase {
	ttl := policy.WebhookClaimTTL
	if ttl <= 0 {
		ttl = defaultClaimTTL
	}
	return &PaymentUseCase{
		repo:      deps.Repo,
		attempts:  deps.Attempts,
		events:    deps.Events,
		cards:     deps.Cards,
		requests:  deps.Requests,
		gateway:   deps.Gateway,
		confirmer: deps.Confirmer,
		audit:     deps.Audit,
		claimTTL:  ttl,
		logger:    logger.With().Str("component", "payment.usecase").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) CreatePayment(ctx context.Context, actor entities.Actor, in CreatePaymentInput) (PaymentResult, error) {
	if err := validateCreatePayment(&in); err != nil {
		return PaymentResult{}, err
	}
	token := strings.TrimSpace(in.Token)
	return u.createPayment(ctx, actor, in, func(context.Context) (string, error) { return token, nil })
}

func (u *PaymentUseCase) PayWithSavedCard(ctx context.Context, actor entities.Actor, in SavedCardPaymentInput) (PaymentResult, error) {
	in.SavedCardID = strings.TrimSpace(in.SavedCardID)
	in.SecurityCode = strings.TrimSpace(in.SecurityCode)
	if in.SavedCardID == "" {
		return PaymentResult{}, ErrSavedCardNotFound
	}
	if !isSecurityCode(in.SecurityCode) {
		return PaymentResult{}, ErrSecurityCodeRequired
	}
	if u.cards == nil {
		return PaymentResult{}, ErrSavedCardNotFound
	}

	card, err := u.cards.GetByID(ctx, in.SavedCardID)
	if err != nil {
		return PaymentResult{}, err
	}
	if card.ID == "" {
		return PaymentResult{}, ErrSavedCardNotFound
	}
	if card.UserID != actor.ID {
		return PaymentResult{}, ErrNotOwner
	}

	req := CreatePaymentInput{
		RequestID:       in.RequestID,
		Method:          entities.PaymentMethodCard,
		PaymentMethodID: card.Brand,
		Installments:    in.Installments,
		PayerEmail:      in.PayerEmail,
		CorrelationID:   in.CorrelationID,
		// placeholder so validation passes; the real token is derived after reservation
		Token: "saved-card",
	}
	if err := validateCreatePayment(&req); err != nil {
		return PaymentResult{}, err
	}
	return u.createPayment(ctx, actor, req, func(ctx context.Context) (string, error) {
		return u.gateway.CreateCardToken(ctx, card.GatewayCustomerID, card.GatewayCardID, in.SecurityCode)
	})
}

// createPayment runs the reservation protocol. token is resolved only when a new
// charge is about to be made, never on replays.
func (u *PaymentUseCase) createPayment(ctx context.Context, actor entities.Actor, in CreatePaymentInput, token func(context.Context) (string, error)) (PaymentResult, error) {
	log := u.logger.With().Str("request_id", in.RequestID).Str("correlation_id", in.CorrelationID).Logger()
	log.Info().Str("method", string(in.Method)).Msg("create payment start")

	if u.gateway == nil {
		log.Error().Msg("payment gateway not configured")
		return PaymentResult{}, ErrGatewayNotConfigured
	}

	r, err := u.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		return PaymentResult{}, err
	}
	if r.ID == "" {
		return PaymentResult{}, ErrRequestNotFound
	}
	switch actor.Role {
	case entities.RolePatient:
		if r.PatientID != actor.ID {
			return PaymentResult{}, ErrNotOwner
		}
	case entities.RoleAdmin:
	default:
		return PaymentResult{}, ErrForbiddenRole
	}

	// replays are answered before the status check: a completed attempt stays
	// replayable after the request moved on to paid
	existing, err := u.attempts.GetByCorrelationID(ctx, in.CorrelationID)
	if err != nil {
		return PaymentResult{}, err
	}
	if existing.ID != "" {
		return u.replay(ctx, existing, r.ID)
	}

	if r.Status != entities.RequestStatusApprovedPendingPayment {
		log.Info().Str("status", string(r.Status)).Msg("request not payable")
		return PaymentResult{}, ErrIllegalTransition
	}
	if r.Price == nil {
		return PaymentResult{}, ErrPriceNotSet
	}

	now := u.now()
	attempt := entities.PaymentAttempt{
		ID:            uuid.NewString(),
		CorrelationID: in.CorrelationID,
		RequestID:     r.ID,
		UserID:        actor.ID,
		Method:        in.Method,
		State:         entities.AttemptStateInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored, created, err := u.attempts.Reserve(ctx, attempt)
	if err != nil {
		log.Error().Err(err).Msg("attempt reservation failed")
		return PaymentResult{}, err
	}
	if !created {
		return u.replay(ctx, stored, r.ID)
	}

	p := entities.Payment{
		ID:        uuid.NewString(),
		RequestID: r.ID,
		UserID:    r.PatientID,
		Amount:    *r.Price,
		Method:    in.Method,
		Status:    entities.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p, err = u.repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrActivePaymentExists) {
			log.Info().Msg("request already has an active payment")
			u.failAttempt(ctx, attempt, "conflict", err)
			return PaymentResult{}, ErrPaymentAlreadyActive
		}
		log.Error().Err(err).Msg("payment repository create failed")
		u.failAttempt(ctx, attempt, "storage", err)
		return PaymentResult{}, err
	}
	attempt.PaymentID = p.ID

	charge, err := u.charge(ctx, p, r, in, token)
	if err != nil {
		log.Warn().Err(err).Str("payment_id", p.ID).Msg("payment gateway failed")
		p.Status = entities.PaymentStatusCancelled
		p.StatusDetail = gatewayErrorDetail
		p.UpdatedAt = u.now()
		if _, uErr := u.repo.Update(ctx, p); uErr != nil {
			log.Error().Err(uErr).Str("payment_id", p.ID).Msg("failed to cancel payment after gateway error")
		}
		u.failAttempt(ctx, attempt, "gateway", err)
		metrics.PaymentsCreated.WithLabelValues(string(in.Method), "error").Inc()
		u.audit.Record(ctx, AuditEntry{
			Actor: actor, Action: auditPaymentFailed, EntityType: entities.AuditEntityPayment, EntityID: p.ID,
			Metadata: map[string]any{"request_id": r.ID, "correlation_id": in.CorrelationID, "error": err.Error()},
		})
		return PaymentResult{}, wrapKind(ErrGatewayUnavailable, err)
	}

	status, known := MapGatewayStatus(charge.Status)
	if !known {
		log.Warn().Str("gateway_status", charge.Status).Msg("unknown gateway status; treating as pending")
	}
	saved, storeErr := u.storeCharge(ctx, p, charge, status)

	// the charge exists at the gateway, so the attempt completes even when the
	// result could not be stored; a replay then reads whatever the webhook wrote
	attempt.State = entities.AttemptStateCompleted
	attempt.Outcome = map[string]any{"payment_id": p.ID, "status": string(saved.Status), "external_id": charge.ExternalID}
	if storeErr != nil {
		attempt.Outcome["status"] = string(status)
		attempt.Outcome["store_error"] = storeErr.Error()
	}
	attempt.UpdatedAt = u.now()
	if err := u.attempts.Update(ctx, attempt); err != nil {
		log.Error().Err(err).Str("payment_id", p.ID).Msg("failed to complete payment attempt")
	}
	if storeErr != nil {
		// the webhook reconciles the charge through external_reference
		log.Error().Err(storeErr).Str("payment_id", p.ID).Msg("failed to store gateway result")
		return PaymentResult{}, storeErr
	}
	p = saved

	metrics.PaymentsCreated.WithLabelValues(string(p.Method), string(p.Status)).Inc()
	u.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditPaymentCreated, EntityType: entities.AuditEntityPayment, EntityID: p.ID,
		After: paymentSnapshot(p), Metadata: map[string]any{"request_id": r.ID, "correlation_id": in.CorrelationID},
	})
	log.Info().Str("payment_id", p.ID).Str("status", string(p.Status)).Msg("create payment success")

	if p.Status == entities.PaymentStatusApproved && u.confirmer != nil {
		if _, err := u.confirmer.ConfirmPayment(ctx, p.RequestID, p.ID); err != nil {
			log.Warn().Err(err).Str("payment_id", p.ID).Msg("confirm payment deferred to webhook")
		}
	}
	return PaymentResult{Payment: p}, nil
}

// storeCharge writes the gateway answer onto the payment. A webhook may have
// advanced the row while the charge was in flight, so a version conflict re-reads
// and the status never moves backwards.
func (u *PaymentUseCase) storeCharge(ctx context.Context, p entities.Payment, charge interfaces.ChargeResult, status entities.PaymentStatus) (entities.Payment, error) {
	var err error
	for i := 0; i < maxStoreAttempts; i++ {
		if p.ExternalID == nil || *p.ExternalID == "" {
			p.ExternalID = entities.StringPtr(charge.ExternalID)
		}
		if p.PixQRCode == "" {
			p.PixQRCode = charge.PixQRCode
			p.PixQRCodeBase64 = charge.PixQRCodeBase64
			p.PixTicketURL = charge.PixTicketURL
		}
		if len(p.GatewayPayloadRaw) == 0 {
			p.GatewayPayloadRaw = charge.Raw
		}
		if p.Status != status && p.Status.CanMoveTo(status) {
			p.Status = status
			p.StatusDetail = charge.StatusDetail
		}
		p.UpdatedAt = u.now()
		if p.Status == entities.PaymentStatusApproved && p.PaidAt == nil {
			paidAt := p.UpdatedAt
			p.PaidAt = &paidAt
		}
		var updated entities.Payment
		updated, err = u.repo.Update(ctx, p)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Payment{}, err
		}
		cur, gErr := u.repo.GetByID(ctx, p.ID)
		if gErr != nil {
			return entities.Payment{}, gErr
		}
		if cur.ID == "" {
			return entities.Payment{}, err
		}
		p = cur
	}
	return entities.Payment{}, err
}

func (u *PaymentUseCase) charge(ctx context.Context, p entities.Payment, r entities.MedicalRequest, in CreatePaymentInput, token func(context.Context) (string, error)) (interfaces.ChargeResult, error) {
	tok, err := token(ctx)
	if err != nil {
		return interfaces.ChargeResult{}, fmt.Errorf("card token: %w", err)
	}
	return u.gateway.CreateCharge(ctx, interfaces.ChargeRequest{
		IdempotencyKey:    in.CorrelationID,
		Amount:            p.Amount,
		Method:            p.Method,
		Token:             tok,
		PaymentMethodID:   in.PaymentMethodID,
		Installments:      in.Installments,
		PayerEmail:        in.PayerEmail,
		Description:       fmt.Sprintf("%s %s", r.Type, r.Subtype),
		ExternalReference: p.ID,
	})
}

func (u *PaymentUseCase) replay(ctx context.Context, a entities.PaymentAttempt, requestID string) (PaymentResult, error) {
	if a.RequestID != requestID {
		return PaymentResult{}, ErrCorrelationIDReused
	}
	switch a.State {
	case entities.AttemptStateCompleted:
		p, err := u.repo.GetByID(ctx, a.PaymentID)
		if err != nil {
			return PaymentResult{}, err
		}
		if p.ID == "" {
			return PaymentResult{}, ErrPaymentNotFound
		}
		u.logger.Info().Str("correlation_id", a.CorrelationID).Str("payment_id", p.ID).Msg("payment replayed")
		return PaymentResult{Payment: p, Replayed: true}, nil
	case entities.AttemptStateFailed:
		return PaymentResult{}, attemptFailure(a)
	default:
		return PaymentResult{}, ErrAttemptInProgress
	}
}

func (u *PaymentUseCase) failAttempt(ctx context.Context, a entities.PaymentAttempt, kind string, cause error) {
	a.State = entities.AttemptStateFailed
	a.Error = cause.Error()
	a.Outcome = map[string]any{"error_kind": kind}
	a.UpdatedAt = u.now()
	if err := u.attempts.Update(context.WithoutCancel(ctx), a); err != nil {
		u.logger.Error().Err(err).Str("correlation_id", a.CorrelationID).Msg("failed to record attempt failure")
	}
}

func attemptFailure(a entities.PaymentAttempt) error {
	kind, _ := a.Outcome["error_kind"].(string)
	switch kind {
	case "conflict":
		return ErrPaymentAlreadyActive
	case "gateway":
		return wrapKind(ErrGatewayUnavailable, errors.New(a.Error))
	default:
		return fmt.Errorf("previous attempt failed: %s", a.Error)
	}
}

func (u *PaymentUseCase) SaveCard(ctx context.Context, actor entities.Actor, in SaveCardInput) (entities.SavedCard, error) {
	if actor.Role != entities.RolePatient {
		return entities.SavedCard{}, ErrForbiddenRole
	}
	in.GatewayCustomerID = strings.TrimSpace(in.GatewayCustomerID)
	in.GatewayCardID = strings.TrimSpace(in.GatewayCardID)
	in.LastFour = strings.TrimSpace(in.LastFour)
	if in.GatewayCustomerID == "" || in.GatewayCardID == "" || len(in.LastFour) != 4 || !isDigits(in.LastFour) {
		return entities.SavedCard{}, newError("invalid saved card", ErrValidation)
	}
	card := entities.SavedCard{
		ID:                uuid.NewString(),
		UserID:            actor.ID,
		GatewayCustomerID: in.GatewayCustomerID,
		GatewayCardID:     in.GatewayCardID,
		Brand:             strings.ToLower(strings.TrimSpace(in.Brand)),
		LastFour:          in.LastFour,
		CreatedAt:         u.now(),
	}
	created, err := u.cards.Create(ctx, card)
	if err != nil {
		return entities.SavedCard{}, err
	}
	u.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditSavedCardCreated, EntityType: "saved_card", EntityID: created.ID,
		Metadata: map[string]any{"brand": created.Brand, "last_four": created.LastFour},
	})
	return created, nil
}

func (u *PaymentUseCase) ListSavedCards(ctx context.Context, actor entities.Actor) ([]entities.SavedCard, error) {
	if actor.ID == "" {
		return nil, ErrForbiddenRole
	}
	return u.cards.ListByUserID(ctx, actor.ID)
}

func (u *PaymentUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, newError("invalid payment id", ErrValidation)
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if actor.Role == entities.RolePatient && p.UserID != actor.ID {
		return entities.Payment{}, ErrNotOwner
	}
	return p, nil
}

func (u *PaymentUseCase) ListByRequestID(ctx context.Context, actor entities.Actor, requestID string) ([]entities.Payment, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	if actor.Role == entities.RolePatient {
		r, err := u.requests.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if r.ID == "" {
			return nil, ErrRequestNotFound
		}
		if r.PatientID != actor.ID {
			return nil, ErrNotOwner
		}
	}
	return u.repo.ListByRequestID(ctx, requestID)
}

// MapGatewayStatus projects a Mercado Pago payment status onto PaymentStatus.
// Unknown statuses map to pending and report known=false.
func MapGatewayStatus(raw string) (status entities.PaymentStatus, known bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved":
		return entities.PaymentStatusApproved, true
	case "pending", "in_process", "authorized", "in_mediation":
		return entities.PaymentStatusPending, true
	case "rejected":
		return entities.PaymentStatusRejected, true
	case "cancelled", "expired":
		return entities.PaymentStatusCancelled, true
	case "refunded", "charged_back":
		return entities.PaymentStatusRefunded, true
	}
	return entities.PaymentStatusPending, false
}

func validateCreatePayment(in *CreatePaymentInput) error {
	in.RequestID = strings.TrimSpace(in.RequestID)
	if in.RequestID == "" {
		return ErrInvalidRequestID
	}
	in.Method = entities.PaymentMethod(strings.ToLower(strings.TrimSpace(string(in.Method))))
	if !in.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	in.CorrelationID = strings.TrimSpace(in.CorrelationID)
	if in.CorrelationID == "" || len(in.CorrelationID) > maxCorrelationIDLen {
		return ErrCorrelationIDRequired
	}
	if in.Method == entities.PaymentMethodCard && strings.TrimSpace(in.Token) == "" {
		return ErrCardTokenRequired
	}
	if in.Installments <= 0 {
		in.Installments = 1
	}
	if strings.TrimSpace(in.PayerEmail) != "" {
		email, err := entities.NewEmail(in.PayerEmail)
		if err != nil {
			return ErrInvalidPayerEmail
		}
		in.PayerEmail = email.String()
	}
	return nil
}

func paymentSnapshot(p entities.Payment) map[string]any {
	s := map[string]any{
		"status":     string(p.Status),
		"amount":     p.Amount.String(),
		"method":     string(p.Method),
		"request_id": p.RequestID,
	}
	if p.ExternalID != nil {
		s["external_id"] = *p.ExternalID
	}
	return s
}

func isSecurityCode(s string) bool {
	return (len(s) == 3 || len(s) == 4) && isDigits(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
