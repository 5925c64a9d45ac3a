package postgres

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"
)

type AuditLogRepository struct{ db queryable }

var _ interfaces.IAuditLogRepository = (*AuditLogRepository)(nil)

func (r *AuditLogRepository) Append(ctx context.Context, e entities.AuditLog) error {
	_, err := r.db.Exec(ctx, `INSERT INTO audit_logs
		(id, actor_id, actor_role, action, entity_type, entity_id, before_state, after_state,
		 ip_address, user_agent, correlation_id, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		e.ID, e.ActorID, string(e.ActorRole), e.Action, e.EntityType, e.EntityID, e.Before, e.After,
		e.IPAddress, e.UserAgent, e.CorrelationID, e.Metadata, e.CreatedAt)
	if _, ok := uniqueConstraint(err); ok {
		return interfaces.ErrDuplicateKey
	}
	return err
}

// ListByEntity returns entries in insertion order.
func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]entities.AuditLog, error) {
	rows, err := r.db.Query(ctx, `SELECT id, actor_id, actor_role, action, entity_type, entity_id, before_state, after_state,
		ip_address, user_agent, correlation_id, metadata, created_at
		FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY seq`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.AuditLog
	for rows.Next() {
		var (
			e    entities.AuditLog
			role string
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &role, &e.Action, &e.EntityType, &e.EntityID, &e.Before, &e.After,
			&e.IPAddress, &e.UserAgent, &e.CorrelationID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorRole = entities.Role(role)
		out = append(out, e)
	}
	return out, rows.Err()
}

type PriceRepository struct{ db queryable }

var _ interfaces.IPriceRepository = (*PriceRepository)(nil)

func (r *PriceRepository) Put(ctx context.Context, e entities.PriceEntry) error {
	_, err := r.db.Exec(ctx, `INSERT INTO prices (product_type, subtype, price_cents, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_type, subtype) DO UPDATE SET price_cents = EXCLUDED.price_cents, updated_at = now()`,
		string(e.ProductType), e.Subtype, e.Price.Cents())
	return err
}

func (r *PriceRepository) ListAll(ctx context.Context) ([]entities.PriceEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT product_type, subtype, price_cents FROM prices ORDER BY product_type, subtype`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.PriceEntry
	for rows.Next() {
		var (
			productType, subtype string
			cents                int64
		)
		if err := rows.Scan(&productType, &subtype, &cents); err != nil {
			return nil, err
		}
		price, err := entities.NewMoneyFromCents(cents)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.PriceEntry{ProductType: entities.RequestType(productType), Subtype: subtype, Price: price})
	}
	return out, rows.Err()
}
