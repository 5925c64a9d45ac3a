package interfaces

import (
	"context"

	"medrequest_xpto/internal/domain/entities"
)

// IPriceRepository is the persisted price table. It is read once at startup.
type IPriceRepository interface {
	Put(ctx context.Context, e entities.PriceEntry) error
	ListAll(ctx context.Context) ([]entities.PriceEntry, error)
}

// IPriceLookup resolves the server-side price of a product.
type IPriceLookup interface {
	GetPrice(productType entities.RequestType, subtype string) (entities.Money, bool)
}
