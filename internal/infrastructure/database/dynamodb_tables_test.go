package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

type fakeCreator struct {
	existing map[string]bool
	created  []string
	err      error
}

func (f *fakeCreator) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	name := aws.ToString(in.TableName)
	if f.err != nil {
		return nil, f.err
	}
	if f.existing[name] {
		return nil, &types.ResourceInUseException{Message: aws.String("exists")}
	}
	f.created = append(f.created, name)
	return &dynamodb.CreateTableOutput{}, nil
}

func testNames() TableNames {
	return TableNames{
		Requests: "medical_requests", Payments: "payments", PaymentAttempts: "payment_attempts",
		WebhookEvents: "webhook_events", AuditLogs: "audit_logs", SavedCards: "saved_cards", Prices: "prices",
	}
}

func TestTableDefinitions(t *testing.T) {
	defs := TableDefinitions(testNames())
	if len(defs) != 7 {
		t.Fatalf("expected 7 tables, got %d", len(defs))
	}

	// every key attribute must be declared exactly once
	for _, d := range defs {
		declared := map[string]bool{}
		for _, a := range d.AttributeDefinitions {
			declared[aws.ToString(a.AttributeName)] = true
		}
		keys := append([]types.KeySchemaElement{}, d.KeySchema...)
		for _, idx := range d.GlobalSecondaryIndexes {
			keys = append(keys, idx.KeySchema...)
		}
		used := map[string]bool{}
		for _, k := range keys {
			name := aws.ToString(k.AttributeName)
			used[name] = true
			if !declared[name] {
				t.Fatalf("table %s: key %s not declared", aws.ToString(d.TableName), name)
			}
		}
		for name := range declared {
			if !used[name] {
				t.Fatalf("table %s: attribute %s declared but unused", aws.ToString(d.TableName), name)
			}
		}
	}
}

func TestEnsureTables(t *testing.T) {
	t.Run("skips existing tables", func(t *testing.T) {
		f := &fakeCreator{existing: map[string]bool{"payments": true}}
		if err := EnsureTables(context.Background(), f, testNames(), zerolog.Nop()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.created) != 6 {
			t.Fatalf("expected 6 created tables, got %d", len(f.created))
		}
	})

	t.Run("stops on other errors", func(t *testing.T) {
		f := &fakeCreator{err: errors.New("access denied")}
		if err := EnsureTables(context.Background(), f, testNames(), zerolog.Nop()); err == nil {
			t.Fatal("expected error")
		}
	})
}
