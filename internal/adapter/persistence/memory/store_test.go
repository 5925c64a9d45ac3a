package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicalRequestRepository_OptimisticUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicalRequestRepository()

	created, err := repo.Create(ctx, entities.MedicalRequest{ID: "r1", PatientID: "p1", Status: entities.RequestStatusSubmitted})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	_, err = repo.Create(ctx, created)
	assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)

	next := created.Clone()
	next.Status = entities.RequestStatusInReview
	updated, err := repo.Update(ctx, next, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = repo.Update(ctx, next, 1)
	assert.ErrorIs(t, err, interfaces.ErrVersionConflict)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestMedicalRequestRepository_ConcurrentUpdatesOneWins(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicalRequestRepository()
	created, err := repo.Create(ctx, entities.MedicalRequest{ID: "r1", Status: entities.RequestStatusInReview})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := created.Clone()
			next.Status = entities.RequestStatusApprovedPendingPayment
			if _, err := repo.Update(ctx, next, created.Version); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestMedicalRequestRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicalRequestRepository()
	_, err := repo.Create(ctx, entities.MedicalRequest{ID: "r1", Medications: []string{"a"}})
	require.NoError(t, err)

	got, _ := repo.GetByID(ctx, "r1")
	got.Medications[0] = "changed"

	again, _ := repo.GetByID(ctx, "r1")
	assert.Equal(t, "a", again.Medications[0])
}

func TestPaymentRepository_ActiveGuard(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	p1, err := repo.Create(ctx, entities.Payment{ID: "p1", RequestID: "r1", Status: entities.PaymentStatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, entities.Payment{ID: "p2", RequestID: "r1", Status: entities.PaymentStatusPending})
	assert.ErrorIs(t, err, interfaces.ErrActivePaymentExists)

	p1.Status = entities.PaymentStatusRejected
	p1, err = repo.Update(ctx, p1)
	require.NoError(t, err)

	_, err = repo.Create(ctx, entities.Payment{ID: "p2", RequestID: "r1", Status: entities.PaymentStatusPending})
	require.NoError(t, err)

	// the rejected payment cannot come back while p2 is active
	p1.Status = entities.PaymentStatusApproved
	_, err = repo.Update(ctx, p1)
	assert.ErrorIs(t, err, interfaces.ErrActivePaymentExists)
}

func TestPaymentRepository_UpdateIsVersioned(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	created, err := repo.Create(ctx, entities.Payment{ID: "p1", RequestID: "r1", Status: entities.PaymentStatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	approved := created
	approved.Status = entities.PaymentStatusApproved
	stored, err := repo.Update(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)

	// a writer still holding version 1 loses
	stale := created
	stale.StatusDetail = "pending_waiting_transfer"
	_, err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, interfaces.ErrVersionConflict)

	got, _ := repo.GetByID(ctx, "p1")
	assert.Equal(t, entities.PaymentStatusApproved, got.Status)
}

func TestPaymentRepository_GetByExternalID(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()
	ext := "mp-1"
	_, err := repo.Create(ctx, entities.Payment{ID: "p1", RequestID: "r1", Status: entities.PaymentStatusPending, ExternalID: &ext})
	require.NoError(t, err)

	got, err := repo.GetByExternalID(ctx, "mp-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	none, err := repo.GetByExternalID(ctx, "mp-2")
	require.NoError(t, err)
	assert.Empty(t, none.ID)
}

func TestPaymentAttemptRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentAttemptRepository()

	_, created, err := repo.Reserve(ctx, entities.PaymentAttempt{ID: "a1", CorrelationID: "k1", RequestID: "r1", State: entities.AttemptStateInProgress})
	require.NoError(t, err)
	assert.True(t, created)

	stored, created, err := repo.Reserve(ctx, entities.PaymentAttempt{ID: "a2", CorrelationID: "k1", RequestID: "r2"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a1", stored.ID)
	assert.Equal(t, 1, repo.Count())
}

func TestWebhookEventRepository_Claim(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookEventRepository()
	now := time.Now().UTC()
	ev := entities.WebhookEvent{ID: "e1", ExternalEventID: "evt-1", ClaimedAt: now}

	_, res, err := repo.Claim(ctx, ev, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, interfaces.ClaimAcquired, res)

	_, res, err = repo.Claim(ctx, ev, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, interfaces.ClaimBusy, res)

	// a stale claim is taken over
	later := now.Add(5 * time.Minute)
	ev.ClaimedAt = later
	_, res, err = repo.Claim(ctx, ev, later.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, interfaces.ClaimAcquired, res)

	require.NoError(t, repo.MarkProcessed(ctx, "evt-1", ""))
	_, res, err = repo.Claim(ctx, ev, later)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ClaimProcessed, res)
}

func TestWebhookEventRepository_Release(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookEventRepository()
	now := time.Now().UTC()
	ev := entities.WebhookEvent{ExternalEventID: "evt-1", ClaimedAt: now}

	_, _, err := repo.Claim(ctx, ev, now.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, "evt-1"))

	_, res, err := repo.Claim(ctx, ev, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, interfaces.ClaimAcquired, res)
}

func TestPriceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceRepository()
	m, _ := entities.NewMoneyFromCents(4990)
	require.NoError(t, repo.Put(ctx, entities.PriceEntry{ProductType: entities.RequestTypePrescription, Subtype: "simples", Price: m}))
	require.NoError(t, repo.Put(ctx, entities.PriceEntry{ProductType: entities.RequestTypeExam, Subtype: "laboratorial", Price: m}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entities.RequestTypeExam, all[0].ProductType)
}
