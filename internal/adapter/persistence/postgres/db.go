// Package postgres implements the repositories on PostgreSQL through pgx.
//
// Uniqueness rules (correlation id, external event id, one active payment per
// request) are enforced by the schema in internal/infrastructure/database.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation         = "23505"
	activePaymentConstraint = "uq_payments_active_request"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ queryable = (*pgxpool.Pool)(nil)

// Store bundles one instance of every repository over a shared pool.
type Store struct {
	Requests *MedicalRequestRepository
	Payments *PaymentRepository
	Attempts *PaymentAttemptRepository
	Events   *WebhookEventRepository
	Audit    *AuditLogRepository
	Cards    *SavedCardRepository
	Prices   *PriceRepository
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Requests: &MedicalRequestRepository{db: pool},
		Payments: &PaymentRepository{db: pool},
		Attempts: &PaymentAttemptRepository{db: pool},
		Events:   &WebhookEventRepository{db: pool},
		Audit:    &AuditLogRepository{db: pool},
		Cards:    &SavedCardRepository{db: pool},
		Prices:   &PriceRepository{db: pool},
	}
}

// uniqueConstraint returns the violated constraint name when err is a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
