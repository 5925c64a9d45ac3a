package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medrequest_xpto/internal/domain/accesscode"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/domain/workflow"
	"medrequest_xpto/internal/infrastructure/metrics"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxSystemRetries = 3

	msgAnalysisRetry = "We could not analyse your images right now. Please try again in a few minutes."
	msgUnreadable    = "The images could not be read. Please send clearer photos of the document."
)

type SubmitInput struct {
	Type        entities.RequestType
	Subtype     string
	PatientID   string
	PatientName string
	Medications []string
	Exams       []string
	Symptoms    string
	ImageURLs   []string
	Notes       string
}

type ReanalyzeInput struct {
	ImageURLs []string
	Text      string
}

// SubmitResult carries the AI gate outcome. ResubmitRequired is a normal result, not an error.
type SubmitResult struct {
	Request          entities.MedicalRequest
	ResubmitRequired bool
	Message          string
}

type ApproveInput struct {
	DoctorName string
	DoctorCRM  string
}

// SignInput selects the signing mode: an externally signed document URL, or a
// certificate reference for local signing.
type SignInput struct {
	SignedDocumentURL   string
	SignatureID         string
	CertificateRef      string
	CertificatePassword string
}

// IRequestUseCase drives a medical request through its lifecycle.
//
// Guards run in a fixed order: existence, role, ownership, legality, input validation,
// external calls, versioned persistence, audit, notification.
type IRequestUseCase interface {
	Submit(ctx context.Context, actor entities.Actor, in SubmitInput) (SubmitResult, error)
	Reanalyze(ctx context.Context, actor entities.Actor, id string, in ReanalyzeInput) (SubmitResult, error)
	Approve(ctx context.Context, actor entities.Actor, id string, in ApproveInput) (entities.MedicalRequest, error)
	Reject(ctx context.Context, actor entities.Actor, id string, reason string) (entities.MedicalRequest, error)
	ConfirmPayment(ctx context.Context, requestID, paymentID string) (bool, error)
	Sign(ctx context.Context, actor entities.Actor, id string, in SignInput) (entities.MedicalRequest, error)
	Deliver(ctx context.Context, id string) (entities.MedicalRequest, error)
	DeliverAs(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error)
	AcceptConsultation(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error)
	StartConsultation(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error)
	FinishConsultation(ctx context.Context, actor entities.Actor, id string, notes string) (entities.MedicalRequest, error)
	Cancel(ctx context.Context, actor entities.Actor, id string, reason string) (entities.MedicalRequest, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error)
	ListByPatient(ctx context.Context, actor entities.Actor, patientID string) ([]entities.MedicalRequest, error)
}

type RequestUseCaseDeps struct {
	Repo     interfaces.IMedicalRequestRepository
	AIGate   interfaces.IAIGate
	Prices   interfaces.IPriceLookup
	Renderer interfaces.IDocumentRenderer
	Signer   interfaces.ISigningService
	Storage  interfaces.IDocumentStorage
	Notifier interfaces.INotificationSender
	Video    interfaces.IVideoRoomProvider
	Audit    *AuditRecorder
}

type RequestPolicy struct {
	// AnalysisSync runs the AI gate inside Submit. When false it runs in the background.
	AnalysisSync bool
	// AutoDeliver delivers a document as soon as it is signed.
	AutoDeliver bool
}

type RequestUseCase struct {
	repo     interfaces.IMedicalRequestRepository
	aiGate   interfaces.IAIGate
	prices   interfaces.IPriceLookup
	renderer interfaces.IDocumentRenderer
	signer   interfaces.ISigningService
	storage  interfaces.IDocumentStorage
	notifier interfaces.INotificationSender
	video    interfaces.IVideoRoomProvider
	audit    *AuditRecorder
	policy   RequestPolicy
	logger   zerolog.Logger
	now      func() time.Time

	// background analyses started by Submit when AnalysisSync is off
	analyses sync.WaitGroup
}

var (
	_ IRequestUseCase              = (*RequestUseCase)(nil)
	_ interfaces.IPaymentConfirmer = (*RequestUseCase)(nil)
)

func NewRequestUseCase(deps RequestUseCaseDeps, policy RequestPolicy, logger zerolog.Logger) *RequestUseCase {
	return &RequestUseCase{
		repo:     deps.Repo,
		aiGate:   deps.AIGate,
		prices:   deps.Prices,
		renderer: deps.Renderer,
		signer:   deps.Signer,
		storage:  deps.Storage,
		notifier: deps.Notifier,
		video:    deps.Video,
		audit:    deps.Audit,
		policy:   policy,
		logger:   logger.With().Str("component", "request.usecase").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var auditActions = map[workflow.Action]string{
	workflow.ActionAnalysisPassed:     "request.analysis_passed",
	workflow.ActionReanalyze:          "request.reanalyzed",
	workflow.ActionApprove:            "request.approved",
	workflow.ActionReject:             "request.rejected",
	workflow.ActionQuote:              "request.quoted",
	workflow.ActionPay:                "request.paid",
	workflow.ActionQueue:              "request.queued",
	workflow.ActionAcceptConsultation: "request.consultation_accepted",
	workflow.ActionStartConsultation:  "request.consultation_started",
	workflow.ActionFinishConsultation: "request.consultation_finished",
	workflow.ActionSign:               "request.signed",
	workflow.ActionRevertSign:         "request.sign_reverted",
	workflow.ActionDeliver:            "request.delivered",
	workflow.ActionCancel:             "request.cancelled",
}

const (
	auditRequestCreated      = "request.created"
	auditRequestAIRejected   = "request.ai_rejected"
	auditRequestAIRetry      = "request.ai_retry"
	auditRequestDocumentSave = "request.document_stored"
)

func (u *RequestUseCase) Submit(ctx context.Context, actor entities.Actor, in SubmitInput) (SubmitResult, error) {
	switch actor.Role {
	case entities.RolePatient:
		in.PatientID = actor.ID
		if strings.TrimSpace(in.PatientName) == "" {
			in.PatientName = actor.Name
		}
	case entities.RoleAdmin:
	default:
		return SubmitResult{}, ErrForbiddenRole
	}
	if err := validateSubmit(&in); err != nil {
		return SubmitResult{}, err
	}

	now := u.now()
	r := entities.MedicalRequest{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Subtype:     in.Subtype,
		Status:      entities.RequestStatusSubmitted,
		PatientID:   in.PatientID,
		PatientName: in.PatientName,
		Medications: in.Medications,
		Exams:       in.Exams,
		Symptoms:    in.Symptoms,
		ImageURLs:   in.ImageURLs,
		Notes:       in.Notes,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if r.Type == entities.RequestTypeConsultation {
		return u.submitConsultation(ctx, actor, r)
	}

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		u.logger.Error().Err(err).Str("request_id", r.ID).Msg("failed to create request")
		return SubmitResult{}, err
	}
	u.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditRequestCreated, EntityType: entities.AuditEntityRequest, EntityID: created.ID,
		After: created.Snapshot(), Metadata: map[string]any{"type": string(created.Type), "subtype": created.Subtype},
	})
	u.logger.Info().Str("request_id", created.ID).Str("type", string(created.Type)).Msg("request submitted")

	if len(created.ImageURLs) == 0 {
		passed, err := u.transition(ctx, entities.SystemActor, created, workflow.ActionAnalysisPassed, nil, map[string]any{"reason": "no_images"})
		if err != nil {
			u.logger.Warn().Err(err).Str("request_id", created.ID).Msg("could not move request to review")
			return SubmitResult{Request: created}, nil
		}
		return SubmitResult{Request: passed}, nil
	}

	if !u.policy.AnalysisSync {
		u.analyses.Add(1)
		go func() {
			defer u.analyses.Done()
			u.runAnalysis(context.WithoutCancel(ctx), created)
		}()
		return SubmitResult{Request: created}, nil
	}
	return u.runAnalysis(ctx, created), nil
}

func (u *RequestUseCase) submitConsultation(ctx context.Context, actor entities.Actor, r entities.MedicalRequest) (SubmitResult, error) {
	price, ok := u.lookupPrice(r.Type, r.Subtype)
	if !ok {
		u.logger.Error().Str("type", string(r.Type)).Str("subtype", r.Subtype).Msg("price not configured")
		return SubmitResult{}, ErrPriceNotConfigured
	}
	to, err := workflow.Next(r.Type, r.Status, workflow.ActionQuote)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
	}
	submitted := r.Snapshot()
	r.Status = to
	r.Price = &price

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		u.logger.Error().Err(err).Str("request_id", r.ID).Msg("failed to create consultation")
		return SubmitResult{}, err
	}
	metrics.Transitions.WithLabelValues(string(workflow.ActionQuote), metrics.OutcomeApplied).Inc()
	u.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditRequestCreated, EntityType: entities.AuditEntityRequest, EntityID: created.ID,
		After: submitted, Metadata: map[string]any{"type": string(created.Type), "subtype": created.Subtype},
	})
	u.audit.Record(ctx, AuditEntry{
		Actor: entities.SystemActor, Action: auditActions[workflow.ActionQuote], EntityType: entities.AuditEntityRequest,
		EntityID: created.ID, Before: submitted, After: created.Snapshot(),
	})
	u.logger.Info().Str("request_id", created.ID).Str("price", price.String()).Msg("consultation quoted")
	return SubmitResult{Request: created}, nil
}

// runAnalysis gates a freshly submitted request. It never returns an error: the request
// already exists and the patient can always reanalyze.
func (u *RequestUseCase) runAnalysis(ctx context.Context, r entities.MedicalRequest) SubmitResult {
	res, err := u.analyze(ctx, r.Type, r.ImageURLs, r.Notes)
	if err != nil {
		u.logger.Warn().Err(err).Str("request_id", r.ID).Msg("ai gate failed")
		saved, sErr := u.save(ctx, entities.SystemActor, r, auditRequestAIRetry, func(m *entities.MedicalRequest) {
			m.AIMessage = entities.StringPtr(msgAnalysisRetry)
		})
		if sErr != nil {
			saved = r
		}
		return SubmitResult{Request: saved, Message: msgAnalysisRetry}
	}

	if !res.Readable {
		msg := unreadableMessage(res)
		saved, sErr := u.save(ctx, entities.SystemActor, r, auditRequestAIRejected, func(m *entities.MedicalRequest) {
			applyAnalysis(m, res)
			m.AIMessage = entities.StringPtr(msg)
		})
		if sErr != nil {
			u.logger.Warn().Err(sErr).Str("request_id", r.ID).Msg("could not store ai result")
			saved = r
		}
		return SubmitResult{Request: saved, ResubmitRequired: true, Message: msg}
	}

	passed, err := u.transition(ctx, entities.SystemActor, r, workflow.ActionAnalysisPassed, func(m *entities.MedicalRequest) {
		applyAnalysis(m, res)
	}, map[string]any{"risk_level": res.RiskLevel})
	if err != nil {
		u.logger.Warn().Err(err).Str("request_id", r.ID).Msg("could not apply analysis result")
		return SubmitResult{Request: r}
	}
	return SubmitResult{Request: passed}
}

func (u *RequestUseCase) Reanalyze(ctx context.Context, actor entities.Actor, id string, in ReanalyzeInput) (SubmitResult, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionReanalyze); err != nil {
		return SubmitResult{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionReanalyze) {
		return SubmitResult{}, ErrIllegalTransition
	}
	images := cleanList(in.ImageURLs)
	if len(images) == 0 {
		return SubmitResult{}, ErrMissingPayload
	}
	text := strings.TrimSpace(in.Text)

	res, gateErr := u.analyze(ctx, r.Type, images, text)
	replace := func(m *entities.MedicalRequest) {
		m.ImageURLs = images
		if text != "" {
			m.Notes = text
		}
	}

	switch {
	case gateErr != nil:
		u.logger.Warn().Err(gateErr).Str("request_id", r.ID).Msg("ai gate failed on reanalysis")
		saved, err := u.save(ctx, actor, r, auditRequestAIRetry, func(m *entities.MedicalRequest) {
			replace(m)
			m.AIMessage = entities.StringPtr(msgAnalysisRetry)
		})
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Request: saved, Message: msgAnalysisRetry}, nil

	case !res.Readable:
		msg := unreadableMessage(res)
		saved, err := u.save(ctx, actor, r, auditRequestAIRejected, func(m *entities.MedicalRequest) {
			replace(m)
			applyAnalysis(m, res)
			m.AIMessage = entities.StringPtr(msg)
		})
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Request: saved, ResubmitRequired: true, Message: msg}, nil

	case r.Status == entities.RequestStatusSubmitted:
		passed, err := u.transition(ctx, entities.SystemActor, r, workflow.ActionAnalysisPassed, func(m *entities.MedicalRequest) {
			replace(m)
			applyAnalysis(m, res)
		}, map[string]any{"reanalysis": true, "requested_by": actor.ID})
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Request: passed}, nil

	default:
		saved, err := u.transition(ctx, actor, r, workflow.ActionReanalyze, func(m *entities.MedicalRequest) {
			replace(m)
			applyAnalysis(m, res)
		}, nil)
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Request: saved}, nil
	}
}

func (u *RequestUseCase) Approve(ctx context.Context, actor entities.Actor, id string, in ApproveInput) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionApprove); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionApprove) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}

	price, ok := u.lookupPrice(r.Type, r.Subtype)
	if !ok {
		u.logger.Error().Str("request_id", r.ID).Str("type", string(r.Type)).Str("subtype", r.Subtype).Msg("price not configured")
		metrics.Transitions.WithLabelValues(string(workflow.ActionApprove), metrics.OutcomeRejected).Inc()
		return entities.MedicalRequest{}, ErrPriceNotConfigured
	}

	name := firstNonEmpty(in.DoctorName, actor.Name)
	crm := firstNonEmpty(in.DoctorCRM, actor.CRM)
	updated, err := u.transition(ctx, actor, r, workflow.ActionApprove, func(m *entities.MedicalRequest) {
		m.Price = &price
		m.DoctorID = entities.StringPtr(actor.ID)
		m.DoctorName = optional(name)
		m.DoctorCRM = optional(crm)
	}, nil)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	u.notify(ctx, updated.PatientID, "Request approved", fmt.Sprintf("Your request was approved. Amount due: R$ %s.", price))
	return updated, nil
}

func (u *RequestUseCase) Reject(ctx context.Context, actor entities.Actor, id string, reason string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionReject); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionReject) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.MedicalRequest{}, ErrReasonRequired
	}

	updated, err := u.transition(ctx, actor, r, workflow.ActionReject, func(m *entities.MedicalRequest) {
		m.RejectionReason = entities.StringPtr(reason)
		if actor.Role == entities.RoleDoctor {
			m.DoctorID = entities.StringPtr(actor.ID)
			m.DoctorName = optional(actor.Name)
			m.DoctorCRM = optional(actor.CRM)
		}
	}, map[string]any{"reason": reason})
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	u.notify(ctx, updated.PatientID, "Request rejected", reason)
	return updated, nil
}

// ConfirmPayment applies pay, and queue for consultations. A request already past
// payment is a no-op; a request that can no longer be paid is ErrIllegalTransition.
func (u *RequestUseCase) ConfirmPayment(ctx context.Context, requestID, paymentID string) (bool, error) {
	meta := map[string]any{"payment_id": paymentID}
	paid, applied, err := u.applySystem(ctx, requestID, workflow.ActionPay, meta, nil, isPaidOrLater)
	if err != nil {
		u.logger.Warn().Err(err).Str("request_id", requestID).Str("payment_id", paymentID).Msg("confirm payment failed")
		return false, err
	}
	if applied {
		u.notify(ctx, paid.PatientID, "Payment confirmed", "We received your payment.")
	} else {
		u.logger.Info().Str("request_id", requestID).Str("payment_id", paymentID).Msg("payment already confirmed")
	}

	// a consultation left in paid by an earlier failure is queued by the next confirmation
	if paid.Type == entities.RequestTypeConsultation && paid.Status == entities.RequestStatusPaid {
		queued, _, err := u.applySystem(ctx, requestID, workflow.ActionQueue, meta, nil, func(s entities.RequestStatus) bool {
			return s != entities.RequestStatusPaid && isPaidOrLater(s)
		})
		if err != nil {
			u.logger.Error().Err(err).Str("request_id", requestID).Msg("failed to queue consultation")
			return applied, nil
		}
		u.logger.Info().Str("request_id", requestID).Str("status", string(queued.Status)).Msg("consultation queued")
	}
	return applied, nil
}

func (u *RequestUseCase) Sign(ctx context.Context, actor entities.Actor, id string, in SignInput) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionSign); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionSign) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	in.SignedDocumentURL = strings.TrimSpace(in.SignedDocumentURL)
	in.CertificateRef = strings.TrimSpace(in.CertificateRef)
	if in.SignedDocumentURL == "" && in.CertificateRef == "" {
		return entities.MedicalRequest{}, ErrSigningInputRequired
	}

	code := accesscode.Generate(r.ID)
	if r.AccessCode != nil {
		code = *r.AccessCode
	}

	var signed entities.MedicalRequest
	if in.SignedDocumentURL != "" {
		signatureID := firstNonEmpty(strings.TrimSpace(in.SignatureID), "external-"+uuid.NewString())
		signed, err = u.transition(ctx, actor, r, workflow.ActionSign, func(m *entities.MedicalRequest) {
			u.markSigned(m, actor, code, signatureID)
			m.SignedDocumentURL = entities.StringPtr(in.SignedDocumentURL)
		}, map[string]any{"mode": "external"})
		if err != nil {
			return entities.MedicalRequest{}, err
		}
	} else {
		signed, err = u.signLocally(ctx, actor, r, code, in)
		if err != nil {
			return entities.MedicalRequest{}, err
		}
	}
	u.notify(ctx, signed.PatientID, "Document signed", "Your document is signed and available.")

	if u.policy.AutoDeliver {
		delivered, err := u.Deliver(ctx, signed.ID)
		if err != nil {
			u.logger.Warn().Err(err).Str("request_id", signed.ID).Msg("auto delivery failed")
			return signed, nil
		}
		return delivered, nil
	}
	return signed, nil
}

func (u *RequestUseCase) signLocally(ctx context.Context, actor entities.Actor, r entities.MedicalRequest, code string, in SignInput) (entities.MedicalRequest, error) {
	if u.renderer == nil || u.signer == nil || u.storage == nil {
		return entities.MedicalRequest{}, ErrSigningUnavailable
	}

	preview := r.Clone()
	u.markSigned(&preview, actor, code, "")
	doc, err := u.renderer.Render(ctx, preview)
	if err != nil {
		return entities.MedicalRequest{}, wrapKind(ErrSigningUnavailable, err)
	}
	res, err := u.signer.Sign(ctx, doc.Content, in.CertificateRef, in.CertificatePassword)
	if err != nil {
		u.logger.Warn().Err(err).Str("request_id", r.ID).Msg("signing failed")
		return entities.MedicalRequest{}, wrapKind(ErrSigningUnavailable, err)
	}

	signed, err := u.transition(ctx, actor, r, workflow.ActionSign, func(m *entities.MedicalRequest) {
		u.markSigned(m, actor, code, res.SignatureID)
	}, map[string]any{"mode": "local"})
	if err != nil {
		return entities.MedicalRequest{}, err
	}

	key := fmt.Sprintf("signed/%s/%s%s", signed.ID, res.SignatureID, doc.Extension)
	url, err := u.storage.Put(ctx, key, res.SignedDocument, doc.ContentType)
	if err != nil {
		u.logger.Error().Err(err).Str("request_id", signed.ID).Msg("storing signed document failed; reverting signature")
		if _, rErr := u.transition(ctx, entities.SystemActor, signed, workflow.ActionRevertSign, func(m *entities.MedicalRequest) {
			m.SignedAt = nil
			m.SignatureID = nil
			m.SignedDocumentURL = nil
		}, map[string]any{"error": err.Error()}); rErr != nil {
			u.logger.Error().Err(rErr).Str("request_id", signed.ID).Msg("revert sign failed")
		}
		return entities.MedicalRequest{}, wrapKind(ErrStorageUnavailable, err)
	}

	stored, err := u.save(ctx, actor, signed, auditRequestDocumentSave, func(m *entities.MedicalRequest) {
		m.SignedDocumentURL = entities.StringPtr(url)
	})
	if err != nil {
		u.logger.Error().Err(err).Str("request_id", signed.ID).Str("url", url).Msg("failed to record document url")
		return signed, nil
	}
	return stored, nil
}

func (u *RequestUseCase) markSigned(m *entities.MedicalRequest, actor entities.Actor, code, signatureID string) {
	now := u.now()
	if m.AccessCode == nil {
		m.AccessCode = entities.StringPtr(code)
	}
	m.SignedAt = &now
	if signatureID != "" {
		m.SignatureID = entities.StringPtr(signatureID)
	}
	if m.DoctorID == nil {
		m.DoctorID = entities.StringPtr(actor.ID)
	}
	if m.DoctorName == nil {
		m.DoctorName = optional(actor.Name)
	}
	if m.DoctorCRM == nil {
		m.DoctorCRM = optional(actor.CRM)
	}
}

// Deliver is the system delivery of a signed request. A request whose document was
// never stored cannot be delivered.
func (u *RequestUseCase) Deliver(ctx context.Context, id string) (entities.MedicalRequest, error) {
	return u.deliver(ctx, id, nil)
}

// DeliverAs lets an admin, or the doctor who owns the request, trigger the system
// delivery by hand. Everyone else is refused before the workflow is consulted.
func (u *RequestUseCase) DeliverAs(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	switch actor.Role {
	case entities.RoleAdmin:
	case entities.RoleDoctor:
		if r.DoctorID == nil || *r.DoctorID != actor.ID {
			return entities.MedicalRequest{}, ErrNotOwner
		}
	default:
		return entities.MedicalRequest{}, ErrForbiddenRole
	}
	return u.deliver(ctx, r.ID, map[string]any{"requested_by": actor.ID, "requested_role": string(actor.Role)})
}

func (u *RequestUseCase) deliver(ctx context.Context, id string, meta map[string]any) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if r.Status == entities.RequestStatusSigned && (r.SignedDocumentURL == nil || *r.SignedDocumentURL == "") {
		u.logger.Warn().Str("request_id", r.ID).Msg("delivery refused: signed document not stored")
		return entities.MedicalRequest{}, ErrDocumentNotStored
	}

	delivered, applied, err := u.applySystem(ctx, r.ID, workflow.ActionDeliver, meta, nil, func(s entities.RequestStatus) bool {
		return s == entities.RequestStatusDelivered
	})
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if applied {
		u.notify(ctx, delivered.PatientID, "Document delivered", "Your signed document is ready to download.")
	}
	return delivered, nil
}

// Drain waits for background analyses to finish or ctx to end.
func (u *RequestUseCase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.analyses.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *RequestUseCase) AcceptConsultation(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionAcceptConsultation); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionAcceptConsultation) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	if u.video == nil {
		return entities.MedicalRequest{}, ErrVideoUnavailable
	}

	room, err := u.video.CreateRoom(ctx, r.ID)
	if err != nil {
		u.logger.Warn().Err(err).Str("request_id", r.ID).Msg("video room provisioning failed")
		return entities.MedicalRequest{}, wrapKind(ErrVideoUnavailable, err)
	}

	updated, err := u.transition(ctx, actor, r, workflow.ActionAcceptConsultation, func(m *entities.MedicalRequest) {
		m.DoctorID = entities.StringPtr(actor.ID)
		m.DoctorName = optional(actor.Name)
		m.DoctorCRM = optional(actor.CRM)
		m.VideoRoomURL = entities.StringPtr(room.URL)
	}, map[string]any{"room_id": room.ID})
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	u.notify(ctx, updated.PatientID, "Consultation ready", "A doctor accepted your consultation. Join the room when ready.")
	return updated, nil
}

func (u *RequestUseCase) StartConsultation(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionStartConsultation); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionStartConsultation) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	return u.transition(ctx, actor, r, workflow.ActionStartConsultation, func(m *entities.MedicalRequest) {
		now := u.now()
		m.ConsultationStartedAt = &now
	}, nil)
}

func (u *RequestUseCase) FinishConsultation(ctx context.Context, actor entities.Actor, id string, notes string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionFinishConsultation); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionFinishConsultation) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	notes = strings.TrimSpace(notes)
	return u.transition(ctx, actor, r, workflow.ActionFinishConsultation, func(m *entities.MedicalRequest) {
		now := u.now()
		m.ConsultationFinishedAt = &now
		m.ConsultationNotes = optional(notes)
	}, nil)
}

func (u *RequestUseCase) Cancel(ctx context.Context, actor entities.Actor, id string, reason string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if err := u.authorize(actor, r, workflow.ActionCancel); err != nil {
		return entities.MedicalRequest{}, err
	}
	if !workflow.CanApply(r.Type, r.Status, workflow.ActionCancel) {
		return entities.MedicalRequest{}, ErrIllegalTransition
	}
	reason = strings.TrimSpace(reason)
	return u.transition(ctx, actor, r, workflow.ActionCancel, func(m *entities.MedicalRequest) {
		m.CancellationReason = optional(reason)
	}, map[string]any{"reason": reason})
}

func (u *RequestUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.MedicalRequest, error) {
	r, err := u.load(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if actor.Role == entities.RolePatient && r.PatientID != actor.ID {
		return entities.MedicalRequest{}, ErrNotOwner
	}
	return r, nil
}

func (u *RequestUseCase) ListByPatient(ctx context.Context, actor entities.Actor, patientID string) ([]entities.MedicalRequest, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, ErrInvalidPatient
	}
	if actor.Role == entities.RolePatient && patientID != actor.ID {
		return nil, ErrNotOwner
	}
	return u.repo.ListByPatientID(ctx, patientID)
}

func (u *RequestUseCase) load(ctx context.Context, id string) (entities.MedicalRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.MedicalRequest{}, ErrInvalidRequestID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.MedicalRequest{}, err
	}
	if r.ID == "" {
		return entities.MedicalRequest{}, ErrRequestNotFound
	}
	return r, nil
}

// authorize checks the actor's role for action, then ownership: patients act on their
// own requests, doctors on requests assigned to them (or still unassigned).
func (u *RequestUseCase) authorize(actor entities.Actor, r entities.MedicalRequest, action workflow.Action) error {
	if err := workflow.Authorize(actor.Role, action); err != nil {
		return ErrForbiddenRole
	}
	switch actor.Role {
	case entities.RolePatient:
		if r.PatientID != actor.ID {
			return ErrNotOwner
		}
	case entities.RoleDoctor:
		if r.DoctorID != nil && *r.DoctorID != actor.ID && action != workflow.ActionReanalyze {
			return ErrNotOwner
		}
	}
	return nil
}

// transition applies action to current and persists it against current.Version.
func (u *RequestUseCase) transition(ctx context.Context, actor entities.Actor, current entities.MedicalRequest, action workflow.Action, mutate func(*entities.MedicalRequest), meta map[string]any) (entities.MedicalRequest, error) {
	to, err := workflow.Next(current.Type, current.Status, action)
	if err != nil {
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeRejected).Inc()
		return entities.MedicalRequest{}, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
	}

	next := current.Clone()
	next.Status = to
	next.UpdatedAt = u.now()
	if mutate != nil {
		mutate(&next)
	}
	// price and access code are write-once
	if current.Price != nil {
		p := *current.Price
		next.Price = &p
	}
	if current.AccessCode != nil {
		next.AccessCode = entities.StringPtr(*current.AccessCode)
	}

	updated, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeConflict).Inc()
			u.logger.Info().Str("request_id", current.ID).Str("action", string(action)).Msg("version conflict")
			return entities.MedicalRequest{}, ErrConcurrentUpdate
		}
		metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeError).Inc()
		u.logger.Error().Err(err).Str("request_id", current.ID).Str("action", string(action)).Msg("failed to persist transition")
		return entities.MedicalRequest{}, err
	}
	metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeApplied).Inc()
	u.logger.Info().
		Str("request_id", updated.ID).
		Str("action", string(action)).
		Str("from", string(current.Status)).
		Str("to", string(updated.Status)).
		Msg("transition applied")

	u.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     auditActions[action],
		EntityType: entities.AuditEntityRequest,
		EntityID:   updated.ID,
		Before:     current.Snapshot(),
		After:      updated.Snapshot(),
		Metadata:   meta,
	})
	return updated, nil
}

// save persists non-status changes under the same version check.
func (u *RequestUseCase) save(ctx context.Context, actor entities.Actor, current entities.MedicalRequest, auditAction string, mutate func(*entities.MedicalRequest)) (entities.MedicalRequest, error) {
	next := current.Clone()
	next.UpdatedAt = u.now()
	mutate(&next)
	next.Status = current.Status

	updated, err := u.repo.Update(ctx, next, current.Version)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.MedicalRequest{}, ErrConcurrentUpdate
		}
		return entities.MedicalRequest{}, err
	}
	u.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     auditAction,
		EntityType: entities.AuditEntityRequest,
		EntityID:   updated.ID,
		Before:     current.Snapshot(),
		After:      updated.Snapshot(),
	})
	return updated, nil
}

// applySystem applies a system action, reloading on version conflicts. done reports
// the statuses in which the action already took effect; those return applied=false.
func (u *RequestUseCase) applySystem(ctx context.Context, id string, action workflow.Action, meta map[string]any, mutate func(*entities.MedicalRequest), done func(entities.RequestStatus) bool) (entities.MedicalRequest, bool, error) {
	for attempt := 0; attempt < maxSystemRetries; attempt++ {
		r, err := u.load(ctx, id)
		if err != nil {
			return entities.MedicalRequest{}, false, err
		}
		if done != nil && done(r.Status) {
			metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeNoop).Inc()
			return r, false, nil
		}
		if !workflow.CanApply(r.Type, r.Status, action) {
			metrics.Transitions.WithLabelValues(string(action), metrics.OutcomeRejected).Inc()
			return r, false, ErrIllegalTransition
		}
		updated, err := u.transition(ctx, entities.SystemActor, r, action, mutate, meta)
		if errors.Is(err, ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return entities.MedicalRequest{}, false, err
		}
		return updated, true, nil
	}
	return entities.MedicalRequest{}, false, ErrConcurrentUpdate
}

func (u *RequestUseCase) analyze(ctx context.Context, t entities.RequestType, images []string, text string) (interfaces.AnalysisResult, error) {
	if u.aiGate == nil {
		return interfaces.AnalysisResult{Readable: true}, nil
	}
	return u.aiGate.Analyze(ctx, interfaces.AnalysisInput{RequestType: t, ImageURLs: images, Text: text})
}

func (u *RequestUseCase) lookupPrice(t entities.RequestType, subtype string) (entities.Money, bool) {
	if u.prices == nil {
		return entities.Money{}, false
	}
	return u.prices.GetPrice(t, subtype)
}

func (u *RequestUseCase) notify(ctx context.Context, userID, title, body string) {
	if u.notifier == nil || userID == "" {
		return
	}
	if err := u.notifier.Notify(context.WithoutCancel(ctx), userID, title, body); err != nil {
		u.logger.Warn().Err(err).Str("user_id", userID).Str("title", title).Msg("notification failed")
	}
}

func applyAnalysis(m *entities.MedicalRequest, res interfaces.AnalysisResult) {
	readable := res.Readable
	m.AIReadable = &readable
	m.AISummary = optional(res.Summary)
	m.AIRiskLevel = optional(res.RiskLevel)
	m.AIExtracted = res.Extracted
	if res.UserMessage != nil {
		m.AIMessage = entities.StringPtr(*res.UserMessage)
	} else {
		m.AIMessage = nil
	}
}

func unreadableMessage(res interfaces.AnalysisResult) string {
	if res.UserMessage != nil && strings.TrimSpace(*res.UserMessage) != "" {
		return *res.UserMessage
	}
	return msgUnreadable
}

func validateSubmit(in *SubmitInput) error {
	if !in.Type.Valid() {
		return ErrInvalidRequestType
	}
	in.Subtype = strings.ToLower(strings.TrimSpace(in.Subtype))
	if in.Subtype == "" {
		return ErrInvalidSubtype
	}
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.PatientName = strings.TrimSpace(in.PatientName)
	if in.PatientID == "" || in.PatientName == "" {
		return ErrInvalidPatient
	}
	in.Medications = cleanList(in.Medications)
	in.Exams = cleanList(in.Exams)
	in.ImageURLs = cleanList(in.ImageURLs)
	in.Symptoms = strings.TrimSpace(in.Symptoms)
	in.Notes = strings.TrimSpace(in.Notes)

	switch in.Type {
	case entities.RequestTypePrescription:
		if len(in.Medications) == 0 && len(in.ImageURLs) == 0 {
			return ErrMissingPayload
		}
	case entities.RequestTypeExam:
		if len(in.Exams) == 0 && len(in.ImageURLs) == 0 {
			return ErrMissingPayload
		}
	case entities.RequestTypeConsultation:
		if in.Symptoms == "" {
			return ErrMissingPayload
		}
	}
	return nil
}

func isPaidOrLater(s entities.RequestStatus) bool {
	switch s {
	case entities.RequestStatusPaid,
		entities.RequestStatusSigned,
		entities.RequestStatusDelivered,
		entities.RequestStatusSearchingDoctor,
		entities.RequestStatusConsultationReady,
		entities.RequestStatusInConsultation,
		entities.RequestStatusConsultationFinished:
		return true
	}
	return false
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return entities.StringPtr(s)
}
