package repository

import (
	"context"
	"sort"
	"time"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type priceItem struct {
	ID          string `dynamodbav:"id"`
	ProductType string `dynamodbav:"product_type"`
	Subtype     string `dynamodbav:"subtype"`
	PriceCents  int64  `dynamodbav:"price_cents"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// PriceDynamoRepository stores the price table (PK: "<product_type>#<subtype>").
type PriceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPriceRepository = (*PriceDynamoRepository)(nil)

func NewPriceDynamoRepository(ddb DynamoAPI, tableName string) *PriceDynamoRepository {
	return &PriceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PriceDynamoRepository) Put(ctx context.Context, e entities.PriceEntry) error {
	av, err := attributevalue.MarshalMap(priceItem{
		ID:          entities.PriceKey(e.ProductType, e.Subtype),
		ProductType: string(e.ProductType),
		Subtype:     e.Subtype,
		PriceCents:  e.Price.Cents(),
		UpdatedAt:   formatTime(time.Now()),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *PriceDynamoRepository) ListAll(ctx context.Context) ([]entities.PriceEntry, error) {
	raw, err := scanAll(ctx, r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.PriceEntry, 0, len(raw))
	for _, av := range raw {
		var it priceItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		price, err := entities.NewMoneyFromCents(it.PriceCents)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.PriceEntry{
			ProductType: entities.RequestType(it.ProductType),
			Subtype:     it.Subtype,
			Price:       price,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return entities.PriceKey(out[i].ProductType, out[i].Subtype) < entities.PriceKey(out[j].ProductType, out[j].Subtype)
	})
	return out, nil
}
