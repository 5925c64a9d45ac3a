package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
)

const paymentCols = `id, request_id, user_id, amount_cents, method, external_id, status, status_detail,
	pix_qr_code, pix_qr_code_base64, pix_ticket_url, gateway_payload, paid_at, version, created_at, updated_at`

// PaymentRepository relies on the uq_payments_active_request partial index for
// the one-active-payment rule. Updates compare and bump the version column.
type PaymentRepository struct{ db queryable }

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.Version == 0 {
		p.Version = 1
	}
	_, err := r.db.Exec(ctx, `INSERT INTO payments (`+paymentCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`, paymentArgs(p)...)
	if err != nil {
		return entities.Payment{}, mapPaymentWriteError(err)
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	expected := p.Version
	p.Version = expected + 1
	args := append(paymentArgs(p), expected)
	tag, err := r.db.Exec(ctx, `UPDATE payments SET
		request_id=$2, user_id=$3, amount_cents=$4, method=$5, external_id=$6, status=$7, status_detail=$8,
		pix_qr_code=$9, pix_qr_code_base64=$10, pix_ticket_url=$11, gateway_payload=$12, paid_at=$13,
		version=$14, created_at=$15, updated_at=$16
		WHERE id = $1 AND version = $17`, args...)
	if err != nil {
		return entities.Payment{}, mapPaymentWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return entities.Payment{}, interfaces.ErrVersionConflict
	}
	return p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentCols+` FROM payments WHERE id = $1`, id)
}

func (r *PaymentRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentCols+` FROM payments WHERE external_id = $1`, externalID)
}

func (r *PaymentRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentCols+` FROM payments WHERE request_id = $1 ORDER BY created_at DESC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepository) getOne(ctx context.Context, sql string, arg string) (entities.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, sql, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Payment{}, nil
	}
	return p, err
}

func mapPaymentWriteError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok {
		if constraint == activePaymentConstraint {
			return interfaces.ErrActivePaymentExists
		}
		return interfaces.ErrDuplicateKey
	}
	return fmt.Errorf("write payment: %w", err)
}

func paymentArgs(p entities.Payment) []any {
	var payload []byte
	if len(p.GatewayPayloadRaw) > 0 {
		payload = p.GatewayPayloadRaw
	}
	return []any{
		p.ID, p.RequestID, p.UserID, p.Amount.Cents(), string(p.Method), p.ExternalID, string(p.Status), p.StatusDetail,
		p.PixQRCode, p.PixQRCodeBase64, p.PixTicketURL, payload, p.PaidAt, p.Version, p.CreatedAt, p.UpdatedAt,
	}
}

func scanPayment(row pgx.Row) (entities.Payment, error) {
	var (
		p              entities.Payment
		cents          int64
		method, status string
		payload        []byte
	)
	err := row.Scan(&p.ID, &p.RequestID, &p.UserID, &cents, &method, &p.ExternalID, &status, &p.StatusDetail,
		&p.PixQRCode, &p.PixQRCodeBase64, &p.PixTicketURL, &payload, &p.PaidAt, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return entities.Payment{}, err
	}
	amount, err := entities.NewMoneyFromCents(cents)
	if err != nil {
		return entities.Payment{}, err
	}
	p.Amount = amount
	p.Method = entities.PaymentMethod(method)
	p.Status = entities.PaymentStatus(status)
	if len(payload) > 0 {
		p.GatewayPayloadRaw = json.RawMessage(payload)
	}
	return p, nil
}

// PaymentAttemptRepository reserves correlation ids with INSERT ... ON CONFLICT DO NOTHING.
type PaymentAttemptRepository struct{ db queryable }

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptRepository)(nil)

const attemptCols = `correlation_id, id, request_id, payment_id, user_id, method, state, outcome, error, created_at, updated_at`

func (r *PaymentAttemptRepository) Reserve(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, bool, error) {
	tag, err := r.db.Exec(ctx, `INSERT INTO payment_attempts (`+attemptCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (correlation_id) DO NOTHING`, attemptArgs(a)...)
	if err != nil {
		return entities.PaymentAttempt{}, false, fmt.Errorf("reserve attempt: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return a, true, nil
	}
	stored, err := r.GetByCorrelationID(ctx, a.CorrelationID)
	return stored, false, err
}

func (r *PaymentAttemptRepository) Update(ctx context.Context, a entities.PaymentAttempt) error {
	tag, err := r.db.Exec(ctx, `UPDATE payment_attempts SET
		id=$2, request_id=$3, payment_id=$4, user_id=$5, method=$6, state=$7, outcome=$8, error=$9, created_at=$10, updated_at=$11
		WHERE correlation_id = $1`, attemptArgs(a)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (r *PaymentAttemptRepository) GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentAttempt, error) {
	var (
		a             entities.PaymentAttempt
		method, state string
	)
	err := r.db.QueryRow(ctx, `SELECT `+attemptCols+` FROM payment_attempts WHERE correlation_id = $1`, correlationID).
		Scan(&a.CorrelationID, &a.ID, &a.RequestID, &a.PaymentID, &a.UserID, &method, &state, &a.Outcome, &a.Error, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.PaymentAttempt{}, nil
	}
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	a.Method = entities.PaymentMethod(method)
	a.State = entities.AttemptState(state)
	return a, nil
}

func attemptArgs(a entities.PaymentAttempt) []any {
	return []any{
		a.CorrelationID, a.ID, a.RequestID, a.PaymentID, a.UserID, string(a.Method), string(a.State),
		a.Outcome, a.Error, a.CreatedAt, a.UpdatedAt,
	}
}

type SavedCardRepository struct{ db queryable }

var _ interfaces.ISavedCardRepository = (*SavedCardRepository)(nil)

const cardCols = `id, user_id, gateway_customer_id, gateway_card_id, brand, last_four, created_at`

func (r *SavedCardRepository) Create(ctx context.Context, c entities.SavedCard) (entities.SavedCard, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO saved_cards (`+cardCols+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.UserID, c.GatewayCustomerID, c.GatewayCardID, c.Brand, c.LastFour, c.CreatedAt)
	if _, ok := uniqueConstraint(err); ok {
		return entities.SavedCard{}, interfaces.ErrDuplicateKey
	}
	if err != nil {
		return entities.SavedCard{}, err
	}
	return c, nil
}

func (r *SavedCardRepository) GetByID(ctx context.Context, id string) (entities.SavedCard, error) {
	c, err := scanCard(r.db.QueryRow(ctx, `SELECT `+cardCols+` FROM saved_cards WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.SavedCard{}, nil
	}
	return c, err
}

func (r *SavedCardRepository) ListByUserID(ctx context.Context, userID string) ([]entities.SavedCard, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cardCols+` FROM saved_cards WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.SavedCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCard(row pgx.Row) (entities.SavedCard, error) {
	var c entities.SavedCard
	err := row.Scan(&c.ID, &c.UserID, &c.GatewayCustomerID, &c.GatewayCardID, &c.Brand, &c.LastFour, &c.CreatedAt)
	return c, err
}
