package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo scripts the responses of each DynamoDB call and records the inputs.
type fakeDynamo struct {
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	transact   func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)

	puts      []*dynamodb.PutItemInput
	updates   []*dynamodb.UpdateItemInput
	transacts []*dynamodb.TransactWriteItemsInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putItem == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return f.putItem(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateItem == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.query == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.query(in)
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	if f.transact == nil {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	return f.transact(in)
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func cancelled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, c := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(c)}
	}
	return &types.TransactionCanceledException{Message: aws.String("cancelled"), CancellationReasons: reasons}
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func TestMedicalRequestItemMapping(t *testing.T) {
	price, _ := entities.NewMoneyFromCents(2990)
	signedAt := time.Date(2026, 3, 1, 10, 0, 0, 123, time.UTC)
	readable := true
	m := entities.MedicalRequest{
		ID: "req-1", Type: entities.RequestTypePrescription, Subtype: "simples",
		Status: entities.RequestStatusSigned, PatientID: "patient-1", PatientName: "Maria",
		DoctorID: entities.StringPtr("doctor-1"), Medications: []string{"Amoxicilina 500mg"},
		Price: &price, AccessCode: entities.StringPtr("0848"), AIReadable: &readable,
		SignedAt: &signedAt, Version: 4,
		CreatedAt: signedAt.Add(-time.Hour), UpdatedAt: signedAt,
	}

	got := fromMedicalRequestItem(toMedicalRequestItem(m))

	require.NotNil(t, got.Price)
	assert.Equal(t, int64(2990), got.Price.Cents())
	assert.Equal(t, "0848", *got.AccessCode)
	assert.True(t, got.SignedAt.Equal(signedAt))
	assert.True(t, got.CreatedAt.Equal(m.CreatedAt))
	assert.Equal(t, m.Medications, got.Medications)
	assert.Equal(t, int64(4), got.Version)
	assert.Nil(t, got.DoctorName)
}

func TestSortableTime(t *testing.T) {
	a := formatTime(time.Date(2026, 1, 1, 0, 0, 0, 5, time.UTC))
	b := formatTime(time.Date(2026, 1, 1, 0, 0, 0, 40, time.UTC))
	assert.Len(t, a, len(b))
	assert.Less(t, a, b)
	assert.True(t, parseTime("2026-01-01T00:00:00.5Z").Equal(time.Date(2026, 1, 1, 0, 0, 0, 500000000, time.UTC)))
}

func TestMedicalRequestDynamoRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("conditions on the expected version", func(t *testing.T) {
		f := &fakeDynamo{}
		r := NewMedicalRequestDynamoRepository(f, "medical_requests")

		got, err := r.Update(ctx, entities.MedicalRequest{ID: "req-1", Status: entities.RequestStatusInReview}, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Version)

		require.Len(t, f.puts, 1)
		in := f.puts[0]
		assert.Equal(t, "3", in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, "4", in.Item["version"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("stale version", func(t *testing.T) {
		f := &fakeDynamo{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) { return nil, conditionFailed() }}
		r := NewMedicalRequestDynamoRepository(f, "medical_requests")

		_, err := r.Update(ctx, entities.MedicalRequest{ID: "req-1"}, 3)
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		boom := errors.New("throttled")
		f := &fakeDynamo{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) { return nil, boom }}
		r := NewMedicalRequestDynamoRepository(f, "medical_requests")

		_, err := r.Update(ctx, entities.MedicalRequest{ID: "req-1"}, 1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestMedicalRequestDynamoRepository_GetByID(t *testing.T) {
	r := NewMedicalRequestDynamoRepository(&fakeDynamo{}, "medical_requests")
	got, err := r.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestPaymentDynamoRepository_Create(t *testing.T) {
	ctx := context.Background()
	amount, _ := entities.NewMoneyFromCents(2990)
	pending := entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusPending, CreatedAt: time.Now()}

	t.Run("active payment writes guard in the same transaction", func(t *testing.T) {
		f := &fakeDynamo{}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Create(ctx, pending)
		require.NoError(t, err)
		require.Len(t, f.transacts, 1)
		items := f.transacts[0].TransactItems
		require.Len(t, items, 2)
		assert.Equal(t, "active#req-1", items[1].Put.Item["id"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, "pay-1", items[1].Put.Item["payment_id"].(*types.AttributeValueMemberS).Value)
		_, hasExternal := items[0].Put.Item["external_id"]
		assert.False(t, hasExternal, "external_id must be omitted so the index stays sparse")
	})

	t.Run("guard held by another payment", func(t *testing.T) {
		f := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("None", "ConditionalCheckFailed")
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Create(ctx, pending)
		assert.ErrorIs(t, err, interfaces.ErrActivePaymentExists)
	})

	t.Run("duplicate id", func(t *testing.T) {
		f := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("ConditionalCheckFailed", "None")
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Create(ctx, pending)
		assert.ErrorIs(t, err, interfaces.ErrDuplicateKey)
	})

	t.Run("inactive payment skips the guard", func(t *testing.T) {
		f := &fakeDynamo{}
		r := NewPaymentDynamoRepository(f, "payments")

		rejected := pending
		rejected.Status = entities.PaymentStatusRejected
		_, err := r.Create(ctx, rejected)
		require.NoError(t, err)
		assert.Len(t, f.puts, 1)
		assert.Empty(t, f.transacts)
	})
}

func TestPaymentDynamoRepository_Update(t *testing.T) {
	ctx := context.Background()
	amount, _ := entities.NewMoneyFromCents(2990)

	t.Run("leaving active releases the guard it holds", func(t *testing.T) {
		f := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: mustMarshal(t, activeGuardItem{ID: "active#req-1", PaymentID: "pay-1"})}, nil
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Update(ctx, entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusRejected})
		require.NoError(t, err)
		items := f.transacts[0].TransactItems
		require.Len(t, items, 2)
		require.NotNil(t, items[1].Delete)
	})

	t.Run("guard held by another payment is left alone", func(t *testing.T) {
		f := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: mustMarshal(t, activeGuardItem{ID: "active#req-1", PaymentID: "pay-2"})}, nil
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Update(ctx, entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusCancelled})
		require.NoError(t, err)
		assert.Len(t, f.transacts[0].TransactItems, 1)
	})

	t.Run("write is conditional on the read version", func(t *testing.T) {
		f := &fakeDynamo{}
		r := NewPaymentDynamoRepository(f, "payments")

		got, err := r.Update(ctx, entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusApproved, Version: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Version)
		put := f.transacts[0].TransactItems[0].Put
		assert.Equal(t, "attribute_exists(#id) AND #version = :expected", *put.ConditionExpression)
		assert.Equal(t, "3", put.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, "4", put.Item["version"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("stale version", func(t *testing.T) {
		f := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("ConditionalCheckFailed", "None")
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Update(ctx, entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusPending, Version: 1})
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})

	t.Run("becoming active while another payment is active", func(t *testing.T) {
		f := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, cancelled("None", "ConditionalCheckFailed")
		}}
		r := NewPaymentDynamoRepository(f, "payments")

		_, err := r.Update(ctx, entities.Payment{ID: "pay-1", RequestID: "req-1", Amount: amount, Status: entities.PaymentStatusApproved})
		assert.ErrorIs(t, err, interfaces.ErrActivePaymentExists)
	})
}

func TestPaymentDynamoRepository_GetByIDIgnoresGuardItems(t *testing.T) {
	f := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: mustMarshal(t, activeGuardItem{ID: "active#req-1", PaymentID: "pay-1"})}, nil
	}}
	r := NewPaymentDynamoRepository(f, "payments")

	got, err := r.GetByID(context.Background(), "active#req-1")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestPaymentAttemptDynamoRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	stored := entities.PaymentAttempt{ID: "att-1", CorrelationID: "corr-1", RequestID: "req-1", State: entities.AttemptStateCompleted, PaymentID: "pay-1"}

	t.Run("new key", func(t *testing.T) {
		r := NewPaymentAttemptDynamoRepository(&fakeDynamo{}, "payment_attempts")
		got, created, err := r.Reserve(ctx, stored)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "att-1", got.ID)
	})

	t.Run("existing key returns the stored attempt", func(t *testing.T) {
		f := &fakeDynamo{
			putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) { return nil, conditionFailed() },
			getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: mustMarshal(t, toPaymentAttemptItem(stored))}, nil
			},
		}
		r := NewPaymentAttemptDynamoRepository(f, "payment_attempts")

		got, created, err := r.Reserve(ctx, entities.PaymentAttempt{ID: "att-2", CorrelationID: "corr-1"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "att-1", got.ID)
		assert.Equal(t, "pay-1", got.PaymentID)
		assert.Equal(t, entities.AttemptStateCompleted, got.State)
	})
}

func TestWebhookEventDynamoRepository_Claim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	staleBefore := now.Add(-2 * time.Minute)
	ev := entities.WebhookEvent{ID: "ev-1", ExternalEventID: "payment:payment.updated:123", ExternalPaymentID: "123", ClaimedAt: now, CreatedAt: now, UpdatedAt: now}

	oldItem := func(processed bool, claimedAt time.Time) map[string]types.AttributeValue {
		old := ev
		old.Processed = processed
		old.ClaimedAt = claimedAt
		return mustMarshal(t, toWebhookEventItem(old))
	}
	failWith := func(item map[string]types.AttributeValue) func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
		return func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists"), Item: item}
		}
	}

	t.Run("first delivery", func(t *testing.T) {
		r := NewWebhookEventDynamoRepository(&fakeDynamo{}, "webhook_events")
		_, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimAcquired, res)
	})

	t.Run("already processed", func(t *testing.T) {
		f := &fakeDynamo{putItem: failWith(oldItem(true, now.Add(-time.Hour)))}
		r := NewWebhookEventDynamoRepository(f, "webhook_events")
		_, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimProcessed, res)
		assert.Empty(t, f.updates)
	})

	t.Run("live claim", func(t *testing.T) {
		f := &fakeDynamo{putItem: failWith(oldItem(false, now.Add(-30*time.Second)))}
		r := NewWebhookEventDynamoRepository(f, "webhook_events")
		_, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimBusy, res)
	})

	t.Run("stale claim is taken over", func(t *testing.T) {
		f := &fakeDynamo{
			putItem: failWith(oldItem(false, now.Add(-10*time.Minute))),
			updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
				return &dynamodb.UpdateItemOutput{Attributes: oldItem(false, now)}, nil
			},
		}
		r := NewWebhookEventDynamoRepository(f, "webhook_events")
		got, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimAcquired, res)
		assert.True(t, got.ClaimedAt.Equal(now))
		require.Len(t, f.updates, 1)
	})

	t.Run("released claim is taken over", func(t *testing.T) {
		f := &fakeDynamo{
			putItem: failWith(oldItem(false, time.Time{})),
			updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
				return &dynamodb.UpdateItemOutput{Attributes: oldItem(false, now)}, nil
			},
		}
		r := NewWebhookEventDynamoRepository(f, "webhook_events")
		_, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimAcquired, res)
	})

	t.Run("takeover race lost", func(t *testing.T) {
		f := &fakeDynamo{
			putItem:    failWith(oldItem(false, now.Add(-10*time.Minute))),
			updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) { return nil, conditionFailed() },
		}
		r := NewWebhookEventDynamoRepository(f, "webhook_events")
		_, res, err := r.Claim(ctx, ev, staleBefore)
		require.NoError(t, err)
		assert.Equal(t, interfaces.ClaimBusy, res)
	})
}

func TestWebhookEventDynamoRepository_ReleaseProcessedIsNoop(t *testing.T) {
	f := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) { return nil, conditionFailed() }}
	r := NewWebhookEventDynamoRepository(f, "webhook_events")
	assert.NoError(t, r.Release(context.Background(), "evt"))
}

func TestAuditLogDynamoRepository_ListByEntity(t *testing.T) {
	first := entities.AuditLog{ID: "a1", Action: "request.submitted", EntityType: entities.AuditEntityRequest, EntityID: "req-1", CreatedAt: time.Now()}
	second := entities.AuditLog{ID: "a2", Action: "request.approved", EntityType: entities.AuditEntityRequest, EntityID: "req-1", CreatedAt: time.Now().Add(time.Second),
		Metadata: map[string]any{"price": "29.90"}}

	var got *dynamodb.QueryInput
	f := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		got = in
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			mustMarshal(t, toAuditLogItem(first)),
			mustMarshal(t, toAuditLogItem(second)),
		}}, nil
	}}
	r := NewAuditLogDynamoRepository(f, "audit_logs")

	out, err := r.ListByEntity(context.Background(), entities.AuditEntityRequest, "req-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "request.submitted", out[0].Action)
	assert.Equal(t, "29.90", out[1].Metadata["price"])
	assert.True(t, aws.ToBool(got.ScanIndexForward))
}
