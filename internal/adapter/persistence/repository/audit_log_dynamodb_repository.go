package repository

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/infrastructure/database"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type auditLogItem struct {
	ID            string         `dynamodbav:"id"`
	ActorID       *string        `dynamodbav:"actor_id,omitempty"`
	ActorRole     string         `dynamodbav:"actor_role"`
	Action        string         `dynamodbav:"action"`
	EntityType    string         `dynamodbav:"entity_type"`
	EntityID      string         `dynamodbav:"entity_id"`
	Before        map[string]any `dynamodbav:"before,omitempty"`
	After         map[string]any `dynamodbav:"after,omitempty"`
	IPAddress     string         `dynamodbav:"ip_address,omitempty"`
	UserAgent     string         `dynamodbav:"user_agent,omitempty"`
	CorrelationID string         `dynamodbav:"correlation_id,omitempty"`
	Metadata      map[string]any `dynamodbav:"metadata,omitempty"`
	CreatedAt     string         `dynamodbav:"created_at"`
}

// AuditLogDynamoRepository appends audit entries.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: entity_id-index (PK: entity_id, SK: created_at)
type AuditLogDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IAuditLogRepository = (*AuditLogDynamoRepository)(nil)

func NewAuditLogDynamoRepository(ddb DynamoAPI, tableName string) *AuditLogDynamoRepository {
	return &AuditLogDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *AuditLogDynamoRepository) Append(ctx context.Context, entry entities.AuditLog) error {
	av, err := attributevalue.MarshalMap(toAuditLogItem(entry))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrDuplicateKey
	}
	return err
}

// ListByEntity returns entries oldest first.
func (r *AuditLogDynamoRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]entities.AuditLog, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.AuditLogsEntityIndex),
		KeyConditionExpression: aws.String("entity_id = :eid"),
		FilterExpression:       aws.String("entity_type = :etype"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid":   &types.AttributeValueMemberS{Value: entityID},
			":etype": &types.AttributeValueMemberS{Value: entityType},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.AuditLog, 0, len(raw))
	for _, av := range raw {
		var it auditLogItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		out = append(out, fromAuditLogItem(it))
	}
	return out, nil
}

func toAuditLogItem(e entities.AuditLog) auditLogItem {
	return auditLogItem{
		ID:            e.ID,
		ActorID:       e.ActorID,
		ActorRole:     string(e.ActorRole),
		Action:        e.Action,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		Before:        e.Before,
		After:         e.After,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
		CorrelationID: e.CorrelationID,
		Metadata:      e.Metadata,
		CreatedAt:     formatTime(e.CreatedAt),
	}
}

func fromAuditLogItem(it auditLogItem) entities.AuditLog {
	return entities.AuditLog{
		ID:            it.ID,
		ActorID:       it.ActorID,
		ActorRole:     entities.Role(it.ActorRole),
		Action:        it.Action,
		EntityType:    it.EntityType,
		EntityID:      it.EntityID,
		Before:        it.Before,
		After:         it.After,
		IPAddress:     it.IPAddress,
		UserAgent:     it.UserAgent,
		CorrelationID: it.CorrelationID,
		Metadata:      it.Metadata,
		CreatedAt:     parseTime(it.CreatedAt),
	}
}
