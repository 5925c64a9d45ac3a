package database

import (
	"context"
	"errors"
	"fmt"

	"medrequest_xpto/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// Index names shared by the table definitions and the repositories.
const (
	RequestsPatientIndex  = "patient_id-index"
	PaymentsRequestIndex  = "request_id-index"
	PaymentsExternalIndex = "external_id-index"
	AuditLogsEntityIndex  = "entity_id-index"
	SavedCardsUserIDIndex = "user_id-index"
)

type TableNames struct {
	Requests        string
	Payments        string
	PaymentAttempts string
	WebhookEvents   string
	AuditLogs       string
	SavedCards      string
	Prices          string
}

func TableNamesFromConfig(cfg *config.Config) TableNames {
	return TableNames{
		Requests:        cfg.RequestsTable,
		Payments:        cfg.PaymentsTable,
		PaymentAttempts: cfg.PaymentAttemptsTable,
		WebhookEvents:   cfg.WebhookEventsTable,
		AuditLogs:       cfg.AuditLogsTable,
		SavedCards:      cfg.SavedCardsTable,
		Prices:          cfg.PricesTable,
	}
}

type tableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableDefinitions returns the CreateTable inputs for every table the service uses.
func TableDefinitions(names TableNames) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		table(names.Requests, "id",
			[]types.AttributeDefinition{attrS("id"), attrS("patient_id"), attrS("created_at")},
			gsi(RequestsPatientIndex, "patient_id", "created_at")),
		// Guard items ("active#<request_id>") share the table; they carry neither
		// request_id nor external_id, so both indexes stay sparse.
		table(names.Payments, "id",
			[]types.AttributeDefinition{attrS("id"), attrS("request_id"), attrS("created_at"), attrS("external_id")},
			gsi(PaymentsRequestIndex, "request_id", "created_at"),
			gsi(PaymentsExternalIndex, "external_id", "")),
		table(names.PaymentAttempts, "correlation_id",
			[]types.AttributeDefinition{attrS("correlation_id")}),
		table(names.WebhookEvents, "external_event_id",
			[]types.AttributeDefinition{attrS("external_event_id")}),
		table(names.AuditLogs, "id",
			[]types.AttributeDefinition{attrS("id"), attrS("entity_id"), attrS("created_at")},
			gsi(AuditLogsEntityIndex, "entity_id", "created_at")),
		table(names.SavedCards, "id",
			[]types.AttributeDefinition{attrS("id"), attrS("user_id")},
			gsi(SavedCardsUserIDIndex, "user_id", "")),
		table(names.Prices, "id",
			[]types.AttributeDefinition{attrS("id")}),
	}
}

// EnsureTables creates missing tables. Existing tables are left untouched.
func EnsureTables(ctx context.Context, ddb tableCreator, names TableNames, logger zerolog.Logger) error {
	for _, in := range TableDefinitions(names) {
		name := aws.ToString(in.TableName)
		_, err := ddb.CreateTable(ctx, in)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				logger.Info().Str("table", name).Msg("table already exists")
				continue
			}
			return fmt.Errorf("create table %s: %w", name, err)
		}
		logger.Info().Str("table", name).Msg("table created")
	}
	return nil
}

func table(name, hashKey string, attrs []types.AttributeDefinition, indexes ...types.GlobalSecondaryIndex) *dynamodb.CreateTableInput {
	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
	if len(indexes) > 0 {
		in.GlobalSecondaryIndexes = indexes
	}
	return in
}

func gsi(name, hashKey, rangeKey string) types.GlobalSecondaryIndex {
	keys := []types.KeySchemaElement{{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash}}
	if rangeKey != "" {
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(rangeKey), KeyType: types.KeyTypeRange})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(name),
		KeySchema:  keys,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func attrS(name string) types.AttributeDefinition {
	return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
}
