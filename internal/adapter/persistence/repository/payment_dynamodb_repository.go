package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/database"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const activeGuardPrefix = "active#"

type paymentItem struct {
	ID              string  `dynamodbav:"id"`
	RequestID       string  `dynamodbav:"request_id"`
	UserID          string  `dynamodbav:"user_id"`
	AmountCents     int64   `dynamodbav:"amount_cents"`
	Method          string  `dynamodbav:"method"`
	ExternalID      *string `dynamodbav:"external_id,omitempty"`
	Status          string  `dynamodbav:"status"`
	StatusDetail    string  `dynamodbav:"status_detail,omitempty"`
	PixQRCode       string  `dynamodbav:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string  `dynamodbav:"pix_qr_code_base64,omitempty"`
	PixTicketURL    string  `dynamodbav:"pix_ticket_url,omitempty"`
	GatewayPayload  string  `dynamodbav:"gateway_payload_raw,omitempty"`
	PaidAt          *string `dynamodbav:"paid_at,omitempty"`
	Version         int64   `dynamodbav:"version"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// activeGuardItem marks the payment currently blocking new ones for a request.
type activeGuardItem struct {
	ID        string `dynamodbav:"id"`
	PaymentID string `dynamodbav:"payment_id"`
}

// PaymentDynamoRepository persists payments in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: request_id-index (PK: request_id, SK: created_at)
//   - GSI: external_id-index (PK: external_id)
//
// The one-active-payment rule is a guard item written in the same transaction as
// the payment. Updates are conditional on the stored version.
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.Version == 0 {
		p.Version = 1
	}
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}

	if !p.Status.Active() {
		_, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                put.TableName,
			Item:                     put.Item,
			ConditionExpression:      put.ConditionExpression,
			ExpressionAttributeNames: put.ExpressionAttributeNames,
		})
		if isConditionalCheckFailed(err) {
			return entities.Payment{}, interfaces.ErrDuplicateKey
		}
		if err != nil {
			return entities.Payment{}, err
		}
		return p, nil
	}

	guard, err := r.acquireGuard(p)
	if err != nil {
		return entities.Payment{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{{Put: put}, {Put: guard}},
	})
	if err != nil {
		if failed, ok := cancelledBy(err); ok {
			switch {
			case len(failed) > 0 && failed[0]:
				return entities.Payment{}, interfaces.ErrDuplicateKey
			case len(failed) > 1 && failed[1]:
				return entities.Payment{}, interfaces.ErrActivePaymentExists
			}
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	expected := p.Version
	p.Version = expected + 1
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{"#id": "id", "#version": "version"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	}

	items := []types.TransactWriteItem{{Put: put}}
	if p.Status.Active() {
		guard, err := r.acquireGuard(p)
		if err != nil {
			return entities.Payment{}, err
		}
		items = append(items, types.TransactWriteItem{Put: guard})
	} else {
		holder, err := r.guardHolder(ctx, p.RequestID)
		if err != nil {
			return entities.Payment{}, err
		}
		if holder == p.ID {
			items = append(items, types.TransactWriteItem{Delete: &types.Delete{
				TableName:                 aws.String(r.tableName),
				Key:                       stringKey("id", activeGuardPrefix+p.RequestID),
				ConditionExpression:       aws.String("#pid = :pid"),
				ExpressionAttributeNames:  map[string]string{"#pid": "payment_id"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":pid": &types.AttributeValueMemberS{Value: p.ID}},
			}})
		}
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := cancelledBy(err); ok {
			switch {
			case len(failed) > 0 && failed[0]:
				return entities.Payment{}, interfaces.ErrVersionConflict
			case len(failed) > 1 && failed[1] && p.Status.Active():
				return entities.Payment{}, interfaces.ErrActivePaymentExists
			case len(failed) > 1 && failed[1]:
				return entities.Payment{}, interfaces.ErrVersionConflict
			}
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	// guard items share the table and must never surface as payments
	if _, ok := out.Item["request_id"]; !ok {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.PaymentsExternalIndex),
		KeyConditionExpression: aws.String("external_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: externalID},
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(raw) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw[0], &it); err != nil {
		return entities.Payment{}, err
	}
	// the index is eventually consistent; re-read the base item
	return r.GetByID(ctx, it.ID)
}

// ListByRequestID returns the newest payments first.
func (r *PaymentDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.Payment, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.PaymentsRequestIndex),
		KeyConditionExpression: aws.String("request_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: requestID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(raw))
	for _, av := range raw {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// acquireGuard writes the guard unless another payment holds it.
func (r *PaymentDynamoRepository) acquireGuard(p entities.Payment) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(activeGuardItem{ID: activeGuardPrefix + p.RequestID, PaymentID: p.ID})
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       aws.String("attribute_not_exists(#id) OR #pid = :pid"),
		ExpressionAttributeNames:  map[string]string{"#id": "id", "#pid": "payment_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":pid": &types.AttributeValueMemberS{Value: p.ID}},
	}, nil
}

func (r *PaymentDynamoRepository) guardHolder(ctx context.Context, requestID string) (string, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", activeGuardPrefix+requestID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if len(out.Item) == 0 {
		return "", nil
	}
	var g activeGuardItem
	if err := attributevalue.UnmarshalMap(out.Item, &g); err != nil {
		return "", err
	}
	return g.PaymentID, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:              p.ID,
		RequestID:       p.RequestID,
		UserID:          p.UserID,
		AmountCents:     p.Amount.Cents(),
		Method:          string(p.Method),
		ExternalID:      p.ExternalID,
		Status:          string(p.Status),
		StatusDetail:    p.StatusDetail,
		PixQRCode:       p.PixQRCode,
		PixQRCodeBase64: p.PixQRCodeBase64,
		PixTicketURL:    p.PixTicketURL,
		GatewayPayload:  string(p.GatewayPayloadRaw),
		PaidAt:          formatTimePtr(p.PaidAt),
		Version:         p.Version,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	amount, _ := entities.NewMoneyFromCents(it.AmountCents)
	p := entities.Payment{
		ID:              it.ID,
		RequestID:       it.RequestID,
		UserID:          it.UserID,
		Amount:          amount,
		Method:          entities.PaymentMethod(it.Method),
		ExternalID:      it.ExternalID,
		Status:          entities.PaymentStatus(it.Status),
		StatusDetail:    it.StatusDetail,
		PixQRCode:       it.PixQRCode,
		PixQRCodeBase64: it.PixQRCodeBase64,
		PixTicketURL:    it.PixTicketURL,
		PaidAt:          parseTimePtr(it.PaidAt),
		Version:         it.Version,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
	if it.GatewayPayload != "" {
		p.GatewayPayloadRaw = json.RawMessage(it.GatewayPayload)
	}
	return p
}
