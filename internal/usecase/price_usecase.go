package usecase

import (
	"context"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const auditPriceSet = "price.set"

// IPriceUseCase manages the persisted price table.
//
// Changes are stored only: the running service keeps the table it loaded at startup,
// so a request is never repriced between approval and payment.
type IPriceUseCase interface {
	SetPrice(ctx context.Context, actor entities.Actor, productType entities.RequestType, subtype string, price entities.Money) (entities.PriceEntry, error)
	ListPrices(ctx context.Context) ([]entities.PriceEntry, error)
}

type PriceUseCase struct {
	repo   interfaces.IPriceRepository
	audit  *AuditRecorder
	logger zerolog.Logger
}

var _ IPriceUseCase = (*PriceUseCase)(nil)

func NewPriceUseCase(repo interfaces.IPriceRepository, audit *AuditRecorder, logger zerolog.Logger) *PriceUseCase {
	return &PriceUseCase{repo: repo, audit: audit, logger: logger.With().Str("component", "price.usecase").Logger()}
}

func (u *PriceUseCase) SetPrice(ctx context.Context, actor entities.Actor, productType entities.RequestType, subtype string, price entities.Money) (entities.PriceEntry, error) {
	if actor.Role != entities.RoleAdmin {
		return entities.PriceEntry{}, ErrForbiddenRole
	}
	if !productType.Valid() {
		return entities.PriceEntry{}, ErrInvalidRequestType
	}
	subtype = strings.ToLower(strings.TrimSpace(subtype))
	if subtype == "" {
		return entities.PriceEntry{}, ErrInvalidSubtype
	}
	if price.IsZero() {
		return entities.PriceEntry{}, newError("price must be positive", ErrValidation)
	}
	if u.repo == nil {
		return entities.PriceEntry{}, newError("price repository not configured", ErrFatal)
	}

	e := entities.PriceEntry{ProductType: productType, Subtype: subtype, Price: price}
	if err := u.repo.Put(ctx, e); err != nil {
		u.logger.Error().Err(err).Str("key", entities.PriceKey(productType, subtype)).Msg("failed to store price")
		return entities.PriceEntry{}, err
	}
	u.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditPriceSet, EntityType: "price", EntityID: entities.PriceKey(productType, subtype),
		After: map[string]any{"price": price.String()},
	})
	return e, nil
}

func (u *PriceUseCase) ListPrices(ctx context.Context) ([]entities.PriceEntry, error) {
	if u.repo == nil {
		return nil, nil
	}
	return u.repo.ListAll(ctx)
}
