// Package memory implements the repositories in process memory. It backs the
// development profile and the end-to-end tests; data is lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"
)

// Store bundles one instance of every repository.
type Store struct {
	Requests *MedicalRequestRepository
	Payments *PaymentRepository
	Attempts *PaymentAttemptRepository
	Events   *WebhookEventRepository
	Audit    *AuditLogRepository
	Cards    *SavedCardRepository
	Prices   *PriceRepository
}

func NewStore() *Store {
	return &Store{
		Requests: NewMedicalRequestRepository(),
		Payments: NewPaymentRepository(),
		Attempts: NewPaymentAttemptRepository(),
		Events:   NewWebhookEventRepository(),
		Audit:    NewAuditLogRepository(),
		Cards:    NewSavedCardRepository(),
		Prices:   NewPriceRepository(),
	}
}

type MedicalRequestRepository struct {
	mu   sync.RWMutex
	data map[string]entities.MedicalRequest
}

var _ interfaces.IMedicalRequestRepository = (*MedicalRequestRepository)(nil)

func NewMedicalRequestRepository() *MedicalRequestRepository {
	return &MedicalRequestRepository{data: make(map[string]entities.MedicalRequest)}
}

func (r *MedicalRequestRepository) Create(_ context.Context, m entities.MedicalRequest) (entities.MedicalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[m.ID]; ok {
		return entities.MedicalRequest{}, interfaces.ErrDuplicateKey
	}
	if m.Version == 0 {
		m.Version = 1
	}
	r.data[m.ID] = m.Clone()
	return m.Clone(), nil
}

func (r *MedicalRequestRepository) GetByID(_ context.Context, id string) (entities.MedicalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.data[id]
	if !ok {
		return entities.MedicalRequest{}, nil
	}
	return m.Clone(), nil
}

func (r *MedicalRequestRepository) Update(_ context.Context, m entities.MedicalRequest, expectedVersion int64) (entities.MedicalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.data[m.ID]
	if !ok || cur.Version != expectedVersion {
		return entities.MedicalRequest{}, interfaces.ErrVersionConflict
	}
	m.Version = expectedVersion + 1
	r.data[m.ID] = m.Clone()
	return m.Clone(), nil
}

func (r *MedicalRequestRepository) ListByPatientID(_ context.Context, patientID string) ([]entities.MedicalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.MedicalRequest
	for _, m := range r.data {
		if m.PatientID == patientID {
			out = append(out, m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// PaymentRepository enforces one active payment per request under its mutex.
type PaymentRepository struct {
	mu     sync.RWMutex
	data   map[string]entities.Payment
	active map[string]string
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{data: make(map[string]entities.Payment), active: make(map[string]string)}
}

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[p.ID]; ok {
		return entities.Payment{}, interfaces.ErrDuplicateKey
	}
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Status.Active() {
		if holder, ok := r.active[p.RequestID]; ok && holder != p.ID {
			return entities.Payment{}, interfaces.ErrActivePaymentExists
		}
		r.active[p.RequestID] = p.ID
	}
	r.data[p.ID] = clonePayment(p)
	return clonePayment(p), nil
}

func (r *PaymentRepository) Update(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.data[p.ID]
	if !ok || cur.Version != p.Version {
		return entities.Payment{}, interfaces.ErrVersionConflict
	}
	holder, held := r.active[p.RequestID]
	switch {
	case p.Status.Active() && held && holder != p.ID:
		return entities.Payment{}, interfaces.ErrActivePaymentExists
	case p.Status.Active():
		r.active[p.RequestID] = p.ID
	case held && holder == p.ID:
		delete(r.active, p.RequestID)
	}
	p.Version++
	r.data[p.ID] = clonePayment(p)
	return clonePayment(p), nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return entities.Payment{}, nil
	}
	return clonePayment(p), nil
}

func (r *PaymentRepository) GetByExternalID(_ context.Context, externalID string) (entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data {
		if p.ExternalID != nil && *p.ExternalID == externalID {
			return clonePayment(p), nil
		}
	}
	return entities.Payment{}, nil
}

func (r *PaymentRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.Payment
	for _, p := range r.data {
		if p.RequestID == requestID {
			out = append(out, clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type PaymentAttemptRepository struct {
	mu   sync.Mutex
	data map[string]entities.PaymentAttempt
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptRepository)(nil)

func NewPaymentAttemptRepository() *PaymentAttemptRepository {
	return &PaymentAttemptRepository{data: make(map[string]entities.PaymentAttempt)}
}

func (r *PaymentAttemptRepository) Reserve(_ context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[a.CorrelationID]; ok {
		return cloneAttempt(existing), false, nil
	}
	r.data[a.CorrelationID] = cloneAttempt(a)
	return cloneAttempt(a), true, nil
}

func (r *PaymentAttemptRepository) Update(_ context.Context, a entities.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[a.CorrelationID]; !ok {
		return interfaces.ErrVersionConflict
	}
	r.data[a.CorrelationID] = cloneAttempt(a)
	return nil
}

func (r *PaymentAttemptRepository) GetByCorrelationID(_ context.Context, correlationID string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAttempt(r.data[correlationID]), nil
}

// Count is used by tests to assert idempotency.
func (r *PaymentAttemptRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

type WebhookEventRepository struct {
	mu   sync.Mutex
	data map[string]entities.WebhookEvent
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventRepository)(nil)

func NewWebhookEventRepository() *WebhookEventRepository {
	return &WebhookEventRepository{data: make(map[string]entities.WebhookEvent)}
}

func (r *WebhookEventRepository) Claim(_ context.Context, ev entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[ev.ExternalEventID]
	if !ok {
		r.data[ev.ExternalEventID] = ev
		return ev, interfaces.ClaimAcquired, nil
	}
	if existing.Processed {
		return existing, interfaces.ClaimProcessed, nil
	}
	if existing.ClaimedAt.After(staleBefore) {
		return existing, interfaces.ClaimBusy, nil
	}
	existing.ClaimedAt = ev.ClaimedAt
	existing.UpdatedAt = ev.ClaimedAt
	r.data[ev.ExternalEventID] = existing
	return existing, interfaces.ClaimAcquired, nil
}

func (r *WebhookEventRepository) MarkProcessed(_ context.Context, externalEventID string, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.data[externalEventID]
	if !ok {
		return interfaces.ErrVersionConflict
	}
	now := time.Now().UTC()
	ev.Processed = true
	ev.ProcessingError = processingError
	ev.ProcessedAt = &now
	ev.UpdatedAt = now
	r.data[externalEventID] = ev
	return nil
}

func (r *WebhookEventRepository) Release(_ context.Context, externalEventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.data[externalEventID]
	if !ok || ev.Processed {
		return nil
	}
	ev.ClaimedAt = time.Time{}
	r.data[externalEventID] = ev
	return nil
}

func (r *WebhookEventRepository) GetByExternalEventID(_ context.Context, externalEventID string) (entities.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[externalEventID], nil
}

type AuditLogRepository struct {
	mu      sync.RWMutex
	entries []entities.AuditLog
}

var _ interfaces.IAuditLogRepository = (*AuditLogRepository)(nil)

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Append(_ context.Context, entry entities.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *AuditLogRepository) ListByEntity(_ context.Context, entityType, entityID string) ([]entities.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.AuditLog
	for _, e := range r.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type SavedCardRepository struct {
	mu   sync.RWMutex
	data map[string]entities.SavedCard
}

var _ interfaces.ISavedCardRepository = (*SavedCardRepository)(nil)

func NewSavedCardRepository() *SavedCardRepository {
	return &SavedCardRepository{data: make(map[string]entities.SavedCard)}
}

func (r *SavedCardRepository) Create(_ context.Context, c entities.SavedCard) (entities.SavedCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[c.ID]; ok {
		return entities.SavedCard{}, interfaces.ErrDuplicateKey
	}
	r.data[c.ID] = c
	return c, nil
}

func (r *SavedCardRepository) GetByID(_ context.Context, id string) (entities.SavedCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data[id], nil
}

func (r *SavedCardRepository) ListByUserID(_ context.Context, userID string) ([]entities.SavedCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.SavedCard
	for _, c := range r.data {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type PriceRepository struct {
	mu   sync.RWMutex
	data map[string]entities.PriceEntry
}

var _ interfaces.IPriceRepository = (*PriceRepository)(nil)

func NewPriceRepository() *PriceRepository {
	return &PriceRepository{data: make(map[string]entities.PriceEntry)}
}

func (r *PriceRepository) Put(_ context.Context, e entities.PriceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entities.PriceKey(e.ProductType, e.Subtype)] = e
	return nil
}

func (r *PriceRepository) ListAll(_ context.Context) ([]entities.PriceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.PriceEntry, 0, len(r.data))
	for _, e := range r.data {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return entities.PriceKey(out[i].ProductType, out[i].Subtype) < entities.PriceKey(out[j].ProductType, out[j].Subtype)
	})
	return out, nil
}

func clonePayment(p entities.Payment) entities.Payment {
	c := p
	if p.ExternalID != nil {
		v := *p.ExternalID
		c.ExternalID = &v
	}
	if p.PaidAt != nil {
		v := *p.PaidAt
		c.PaidAt = &v
	}
	if p.GatewayPayloadRaw != nil {
		c.GatewayPayloadRaw = append(json.RawMessage(nil), p.GatewayPayloadRaw...)
	}
	return c
}

func cloneAttempt(a entities.PaymentAttempt) entities.PaymentAttempt {
	c := a
	if a.Outcome != nil {
		c.Outcome = make(map[string]any, len(a.Outcome))
		for k, v := range a.Outcome {
			c.Outcome[k] = v
		}
	}
	return c
}
