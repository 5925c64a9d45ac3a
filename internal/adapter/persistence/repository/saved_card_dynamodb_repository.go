package repository

import (
	"context"
	"sort"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/database"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type savedCardItem struct {
	ID                string `dynamodbav:"id"`
	UserID            string `dynamodbav:"user_id"`
	GatewayCustomerID string `dynamodbav:"gateway_customer_id"`
	GatewayCardID     string `dynamodbav:"gateway_card_id"`
	Brand             string `dynamodbav:"brand,omitempty"`
	LastFour          string `dynamodbav:"last_four,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
}

// SavedCardDynamoRepository (PK: id, GSI user_id-index).
type SavedCardDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ISavedCardRepository = (*SavedCardDynamoRepository)(nil)

func NewSavedCardDynamoRepository(ddb DynamoAPI, tableName string) *SavedCardDynamoRepository {
	return &SavedCardDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SavedCardDynamoRepository) Create(ctx context.Context, c entities.SavedCard) (entities.SavedCard, error) {
	av, err := attributevalue.MarshalMap(savedCardItem{
		ID:                c.ID,
		UserID:            c.UserID,
		GatewayCustomerID: c.GatewayCustomerID,
		GatewayCardID:     c.GatewayCardID,
		Brand:             c.Brand,
		LastFour:          c.LastFour,
		CreatedAt:         formatTime(c.CreatedAt),
	})
	if err != nil {
		return entities.SavedCard{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if isConditionalCheckFailed(err) {
		return entities.SavedCard{}, interfaces.ErrDuplicateKey
	}
	if err != nil {
		return entities.SavedCard{}, err
	}
	return c, nil
}

func (r *SavedCardDynamoRepository) GetByID(ctx context.Context, id string) (entities.SavedCard, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.SavedCard{}, err
	}
	if len(out.Item) == 0 {
		return entities.SavedCard{}, nil
	}
	var it savedCardItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.SavedCard{}, err
	}
	return fromSavedCardItem(it), nil
}

func (r *SavedCardDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.SavedCard, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.SavedCardsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.SavedCard, 0, len(raw))
	for _, av := range raw {
		var it savedCardItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		out = append(out, fromSavedCardItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func fromSavedCardItem(it savedCardItem) entities.SavedCard {
	return entities.SavedCard{
		ID:                it.ID,
		UserID:            it.UserID,
		GatewayCustomerID: it.GatewayCustomerID,
		GatewayCardID:     it.GatewayCardID,
		Brand:             it.Brand,
		LastFour:          it.LastFour,
		CreatedAt:         parseTime(it.CreatedAt),
	}
}
