package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type webhookEventItem struct {
	ExternalEventID   string  `dynamodbav:"external_event_id"`
	ID                string  `dynamodbav:"id"`
	ExternalPaymentID string  `dynamodbav:"external_payment_id"`
	Provider          string  `dynamodbav:"provider"`
	Topic             string  `dynamodbav:"topic,omitempty"`
	Action            string  `dynamodbav:"action,omitempty"`
	Payload           string  `dynamodbav:"payload,omitempty"`
	Processed         bool    `dynamodbav:"processed"`
	ProcessingError   string  `dynamodbav:"processing_error,omitempty"`
	ClaimedAtNanos    int64   `dynamodbav:"claimed_at_ns"`
	ProcessedAt       *string `dynamodbav:"processed_at,omitempty"`
	CreatedAt         string  `dynamodbav:"created_at"`
	UpdatedAt         string  `dynamodbav:"updated_at"`
}

// WebhookEventDynamoRepository deduplicates notifications (PK: external_event_id).
//
// A claim is a conditional put; a stale unprocessed claim is taken over with a
// conditional update on claimed_at_ns.
type WebhookEventDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb DynamoAPI, tableName string) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{ddb: ddb, tableName: tableName, now: func() time.Time { return time.Now().UTC() }}
}

func (r *WebhookEventDynamoRepository) Claim(ctx context.Context, ev entities.WebhookEvent, staleBefore time.Time) (entities.WebhookEvent, interfaces.ClaimResult, error) {
	av, err := attributevalue.MarshalMap(toWebhookEventItem(ev))
	if err != nil {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                           aws.String(r.tableName),
		Item:                                av,
		ConditionExpression:                 aws.String("attribute_not_exists(#eid)"),
		ExpressionAttributeNames:            map[string]string{"#eid": "external_event_id"},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return ev, interfaces.ClaimAcquired, nil
	}
	var cfe *types.ConditionalCheckFailedException
	if !errors.As(err, &cfe) {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}

	existing, err := r.existing(ctx, ev.ExternalEventID, cfe.Item)
	if err != nil {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}
	if existing.Processed {
		return existing, interfaces.ClaimProcessed, nil
	}
	if existing.ClaimedAt.After(staleBefore) {
		return existing, interfaces.ClaimBusy, nil
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("external_event_id", ev.ExternalEventID),
		UpdateExpression:    aws.String("SET #claimed = :now, #updated_at = :updated_at"),
		ConditionExpression: aws.String("#processed = :false AND #claimed <= :stale"),
		ExpressionAttributeNames: map[string]string{
			"#claimed":    "claimed_at_ns",
			"#processed":  "processed",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":        nanosValue(ev.ClaimedAt),
			":stale":      nanosValue(staleBefore),
			":false":      &types.AttributeValueMemberBOOL{Value: false},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(ev.ClaimedAt)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			// another worker took it over first
			return existing, interfaces.ClaimBusy, nil
		}
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}
	var it webhookEventItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.WebhookEvent{}, interfaces.ClaimBusy, err
	}
	return fromWebhookEventItem(it), interfaces.ClaimAcquired, nil
}

func (r *WebhookEventDynamoRepository) MarkProcessed(ctx context.Context, externalEventID string, processingError string) error {
	now := formatTime(r.now())
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("external_event_id", externalEventID),
		UpdateExpression:    aws.String("SET #processed = :true, #perr = :perr, #processed_at = :now, #updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(#eid)"),
		ExpressionAttributeNames: map[string]string{
			"#eid":          "external_event_id",
			"#processed":    "processed",
			"#perr":         "processing_error",
			"#processed_at": "processed_at",
			"#updated_at":   "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
			":perr": &types.AttributeValueMemberS{Value: processingError},
			":now":  &types.AttributeValueMemberS{Value: now},
		},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrVersionConflict
	}
	return err
}

// Release clears the claim of an unprocessed event so the next delivery can take it.
func (r *WebhookEventDynamoRepository) Release(ctx context.Context, externalEventID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("external_event_id", externalEventID),
		UpdateExpression:    aws.String("SET #claimed = :zero"),
		ConditionExpression: aws.String("attribute_exists(#eid) AND #processed = :false"),
		ExpressionAttributeNames: map[string]string{
			"#eid":       "external_event_id",
			"#claimed":   "claimed_at_ns",
			"#processed": "processed",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero":  &types.AttributeValueMemberN{Value: "0"},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if isConditionalCheckFailed(err) {
		return nil
	}
	return err
}

func (r *WebhookEventDynamoRepository) GetByExternalEventID(ctx context.Context, externalEventID string) (entities.WebhookEvent, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("external_event_id", externalEventID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if len(out.Item) == 0 {
		return entities.WebhookEvent{}, nil
	}
	var it webhookEventItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WebhookEvent{}, err
	}
	return fromWebhookEventItem(it), nil
}

// existing decodes the item returned with the failed condition, or reads it when
// the endpoint (e.g. older DynamoDB Local) does not return it.
func (r *WebhookEventDynamoRepository) existing(ctx context.Context, externalEventID string, old map[string]types.AttributeValue) (entities.WebhookEvent, error) {
	if len(old) == 0 {
		return r.GetByExternalEventID(ctx, externalEventID)
	}
	var it webhookEventItem
	if err := attributevalue.UnmarshalMap(old, &it); err != nil {
		return entities.WebhookEvent{}, err
	}
	return fromWebhookEventItem(it), nil
}

func nanosValue(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(toNanos(t), 10)}
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func toWebhookEventItem(ev entities.WebhookEvent) webhookEventItem {
	return webhookEventItem{
		ExternalEventID:   ev.ExternalEventID,
		ID:                ev.ID,
		ExternalPaymentID: ev.ExternalPaymentID,
		Provider:          ev.Provider,
		Topic:             ev.Topic,
		Action:            ev.Action,
		Payload:           string(ev.Payload),
		Processed:         ev.Processed,
		ProcessingError:   ev.ProcessingError,
		ClaimedAtNanos:    toNanos(ev.ClaimedAt),
		ProcessedAt:       formatTimePtr(ev.ProcessedAt),
		CreatedAt:         formatTime(ev.CreatedAt),
		UpdatedAt:         formatTime(ev.UpdatedAt),
	}
}

func fromWebhookEventItem(it webhookEventItem) entities.WebhookEvent {
	ev := entities.WebhookEvent{
		ID:                it.ID,
		ExternalEventID:   it.ExternalEventID,
		ExternalPaymentID: it.ExternalPaymentID,
		Provider:          it.Provider,
		Topic:             it.Topic,
		Action:            it.Action,
		Processed:         it.Processed,
		ProcessingError:   it.ProcessingError,
		ClaimedAt:         fromNanos(it.ClaimedAtNanos),
		ProcessedAt:       parseTimePtr(it.ProcessedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.Payload != "" {
		ev.Payload = json.RawMessage(it.Payload)
	}
	return ev
}
