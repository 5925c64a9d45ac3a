package repository

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type paymentAttemptItem struct {
	CorrelationID string         `dynamodbav:"correlation_id"`
	ID            string         `dynamodbav:"id"`
	RequestID     string         `dynamodbav:"request_id"`
	PaymentID     string         `dynamodbav:"payment_id,omitempty"`
	UserID        string         `dynamodbav:"user_id"`
	Method        string         `dynamodbav:"method"`
	State         string         `dynamodbav:"state"`
	Outcome       map[string]any `dynamodbav:"outcome,omitempty"`
	Error         string         `dynamodbav:"error,omitempty"`
	CreatedAt     string         `dynamodbav:"created_at"`
	UpdatedAt     string         `dynamodbav:"updated_at"`
}

// PaymentAttemptDynamoRepository keys attempts by correlation id (PK: correlation_id).
type PaymentAttemptDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptDynamoRepository)(nil)

func NewPaymentAttemptDynamoRepository(ddb DynamoAPI, tableName string) *PaymentAttemptDynamoRepository {
	return &PaymentAttemptDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentAttemptDynamoRepository) Reserve(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, bool, error) {
	av, err := attributevalue.MarshalMap(toPaymentAttemptItem(a))
	if err != nil {
		return entities.PaymentAttempt{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#cid)"),
		ExpressionAttributeNames: map[string]string{"#cid": "correlation_id"},
	})
	if err == nil {
		return a, true, nil
	}
	if !isConditionalCheckFailed(err) {
		return entities.PaymentAttempt{}, false, err
	}

	stored, err := r.GetByCorrelationID(ctx, a.CorrelationID)
	if err != nil {
		return entities.PaymentAttempt{}, false, err
	}
	return stored, false, nil
}

func (r *PaymentAttemptDynamoRepository) Update(ctx context.Context, a entities.PaymentAttempt) error {
	av, err := attributevalue.MarshalMap(toPaymentAttemptItem(a))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#cid)"),
		ExpressionAttributeNames: map[string]string{"#cid": "correlation_id"},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrVersionConflict
	}
	return err
}

func (r *PaymentAttemptDynamoRepository) GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentAttempt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("correlation_id", correlationID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentAttempt{}, nil
	}
	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func toPaymentAttemptItem(a entities.PaymentAttempt) paymentAttemptItem {
	return paymentAttemptItem{
		CorrelationID: a.CorrelationID,
		ID:            a.ID,
		RequestID:     a.RequestID,
		PaymentID:     a.PaymentID,
		UserID:        a.UserID,
		Method:        string(a.Method),
		State:         string(a.State),
		Outcome:       a.Outcome,
		Error:         a.Error,
		CreatedAt:     formatTime(a.CreatedAt),
		UpdatedAt:     formatTime(a.UpdatedAt),
	}
}

func fromPaymentAttemptItem(it paymentAttemptItem) entities.PaymentAttempt {
	return entities.PaymentAttempt{
		ID:            it.ID,
		CorrelationID: it.CorrelationID,
		RequestID:     it.RequestID,
		PaymentID:     it.PaymentID,
		UserID:        it.UserID,
		Method:        entities.PaymentMethod(it.Method),
		State:         entities.AttemptState(it.State),
		Outcome:       it.Outcome,
		Error:         it.Error,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
