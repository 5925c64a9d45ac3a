package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/metrics"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const webhookProvider = "mercadopago"

// WebhookNotification is a gateway notification as received. Only DataID is used to
// fetch the authoritative status; the rest is kept for traceability.
type WebhookNotification struct {
	EventID         string
	Topic           string
	Action          string
	DataID          string
	SignatureHeader string
	RequestID       string
	Payload         json.RawMessage
}

type WebhookResult struct {
	Duplicate     bool
	Ignored       bool
	Applied       bool
	PaymentID     string
	PaymentStatus entities.PaymentStatus
}

// ProcessWebhook reconciles one gateway notification.
//
// Terminal outcomes (unknown payment, request no longer payable) mark the event
// processed with ProcessingError and return nil. Retryable failures release the
// claim and return an error so the gateway redelivers.
func (u *PaymentUseCase) ProcessWebhook(ctx context.Context, n WebhookNotification) (WebhookResult, error) {
	n.DataID = strings.TrimSpace(n.DataID)
	n.Topic = strings.ToLower(strings.TrimSpace(n.Topic))
	if n.DataID == "" {
		metrics.Webhooks.WithLabelValues(metrics.OutcomeRejected).Inc()
		return WebhookResult{}, ErrInvalidWebhook
	}
	if u.gateway == nil {
		return WebhookResult{}, ErrGatewayNotConfigured
	}
	if err := u.gateway.VerifyWebhookSignature(interfaces.WebhookSignature{
		Header:    n.SignatureHeader,
		RequestID: n.RequestID,
		DataID:    n.DataID,
	}); err != nil {
		u.logger.Warn().Err(err).Str("data_id", n.DataID).Msg("webhook signature rejected")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeRejected).Inc()
		return WebhookResult{}, ErrInvalidSignature
	}
	if n.Topic != "" && n.Topic != "payment" {
		u.logger.Info().Str("topic", n.Topic).Str("data_id", n.DataID).Msg("webhook topic ignored")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeNoop).Inc()
		return WebhookResult{Ignored: true}, nil
	}

	// notifications without an id are keyed by the status they announce, so a
	// later transition of the same payment is not taken for a redelivery
	var prefetched *interfaces.GatewayPaymentStatus
	eventID := strings.TrimSpace(n.EventID)
	if eventID == "" {
		gs, err := u.gateway.GetStatus(ctx, n.DataID)
		if err != nil {
			u.logger.Warn().Err(err).Str("data_id", n.DataID).Msg("gateway status lookup failed")
			metrics.Webhooks.WithLabelValues(metrics.OutcomeError).Inc()
			return WebhookResult{}, wrapKind(ErrGatewayUnavailable, err)
		}
		prefetched = &gs
		eventID = fmt.Sprintf("payment:%s:%s", n.DataID, firstNonEmpty(gs.Status, "unknown"))
	}
	log := u.logger.With().Str("event_id", eventID).Str("data_id", n.DataID).Logger()

	now := u.now()
	ev, claim, err := u.events.Claim(ctx, entities.WebhookEvent{
		ID:                uuid.NewString(),
		ExternalEventID:   eventID,
		ExternalPaymentID: n.DataID,
		Provider:          webhookProvider,
		Topic:             n.Topic,
		Action:            n.Action,
		Payload:           n.Payload,
		ClaimedAt:         now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, now.Add(-u.claimTTL))
	if err != nil {
		log.Error().Err(err).Msg("webhook claim failed")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeError).Inc()
		return WebhookResult{}, err
	}
	switch claim {
	case interfaces.ClaimProcessed:
		log.Info().Msg("webhook already processed")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return WebhookResult{Duplicate: true}, nil
	case interfaces.ClaimBusy:
		log.Info().Msg("webhook claimed by another worker")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeConflict).Inc()
		return WebhookResult{}, ErrWebhookBusy
	}

	res, terminal, err := u.reconcile(ctx, ev, prefetched)
	if err != nil {
		log.Warn().Err(err).Msg("webhook processing failed; releasing claim")
		if rErr := u.events.Release(context.WithoutCancel(ctx), eventID); rErr != nil {
			log.Error().Err(rErr).Msg("failed to release webhook claim")
		}
		metrics.Webhooks.WithLabelValues(metrics.OutcomeError).Inc()
		return WebhookResult{}, err
	}

	if err := u.events.MarkProcessed(context.WithoutCancel(ctx), eventID, terminal); err != nil {
		log.Error().Err(err).Msg("failed to mark webhook processed")
		return WebhookResult{}, err
	}
	if terminal != "" {
		log.Error().Str("processing_error", terminal).Msg("webhook ended in a terminal state")
		metrics.Webhooks.WithLabelValues(metrics.OutcomeTerminal).Inc()
	} else {
		metrics.Webhooks.WithLabelValues(metrics.OutcomeApplied).Inc()
	}
	return res, nil
}

// reconcile fetches the gateway status, unless one was already fetched, and applies
// it. A non-empty terminal string is a non-retryable outcome to record on the event.
func (u *PaymentUseCase) reconcile(ctx context.Context, ev entities.WebhookEvent, prefetched *interfaces.GatewayPaymentStatus) (WebhookResult, string, error) {
	var gs interfaces.GatewayPaymentStatus
	if prefetched != nil {
		gs = *prefetched
	} else {
		var err error
		gs, err = u.gateway.GetStatus(ctx, ev.ExternalPaymentID)
		if err != nil {
			return WebhookResult{}, "", wrapKind(ErrGatewayUnavailable, err)
		}
	}

	p, err := u.findPayment(ctx, ev.ExternalPaymentID, gs.ExternalReference)
	if err != nil {
		return WebhookResult{}, "", err
	}
	if p.ID == "" {
		return WebhookResult{}, "payment not found", nil
	}

	status, known := MapGatewayStatus(gs.Status)
	if !known {
		u.logger.Warn().Str("gateway_status", gs.Status).Str("payment_id", p.ID).Msg("unknown gateway status; treating as pending")
	}
	res := WebhookResult{PaymentID: p.ID, PaymentStatus: status}

	if !canReconcile(p, status) {
		u.logger.Warn().Str("payment_id", p.ID).Str("current", string(p.Status)).Str("gateway_status", gs.Status).
			Msg("stale gateway status ignored")
		res.PaymentStatus = p.Status
		status = p.Status
	} else if p.Status != status || p.StatusDetail != gs.StatusDetail || p.ExternalID == nil {
		before := paymentSnapshot(p)
		p.Status = status
		p.StatusDetail = gs.StatusDetail
		p.ExternalID = entities.StringPtr(ev.ExternalPaymentID)
		if len(gs.Raw) > 0 {
			p.GatewayPayloadRaw = gs.Raw
		}
		p.UpdatedAt = u.now()
		if status == entities.PaymentStatusApproved && p.PaidAt == nil {
			paidAt := p.UpdatedAt
			p.PaidAt = &paidAt
		}
		updated, err := u.repo.Update(ctx, p)
		if err != nil {
			if errors.Is(err, interfaces.ErrActivePaymentExists) {
				return res, "another payment is active for this request", nil
			}
			return WebhookResult{}, "", err
		}
		p = updated
		u.audit.Record(ctx, AuditEntry{
			Actor: entities.SystemActor, Action: auditPaymentStatusChanged, EntityType: entities.AuditEntityPayment,
			EntityID: p.ID, Before: before, After: paymentSnapshot(p),
			Metadata: map[string]any{"event_id": ev.ExternalEventID, "gateway_status": gs.Status},
		})
	}

	if status != entities.PaymentStatusApproved || u.confirmer == nil {
		return res, "", nil
	}
	applied, err := u.confirmer.ConfirmPayment(ctx, p.RequestID, p.ID)
	switch {
	case err == nil:
		res.Applied = applied
		return res, "", nil
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrNotFound):
		// money was taken for a request that cannot be paid anymore; needs a manual refund
		return res, "request can no longer be paid: " + err.Error(), nil
	default:
		return WebhookResult{}, "", err
	}
}

// canReconcile reports whether a gateway status may overwrite the stored one. A
// payment cancelled locally after a failed create call follows whatever the gateway
// says, since the charge may have gone through.
func canReconcile(p entities.Payment, next entities.PaymentStatus) bool {
	if p.Status == entities.PaymentStatusCancelled && p.StatusDetail == gatewayErrorDetail {
		return true
	}
	return p.Status.CanMoveTo(next)
}

// findPayment resolves by gateway id first, then by the external reference we sent,
// which covers charges whose creation response was lost.
func (u *PaymentUseCase) findPayment(ctx context.Context, externalID, externalReference string) (entities.Payment, error) {
	p, err := u.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID != "" {
		return p, nil
	}
	if strings.TrimSpace(externalReference) == "" {
		return entities.Payment{}, nil
	}
	return u.repo.GetByID(ctx, externalReference)
}
