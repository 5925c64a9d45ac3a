// Package pricing holds the immutable server-side price table.
package pricing

import (
	"fmt"
	"strings"

	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase/interfaces"
)

// DefaultTable is used when PRICE_TABLE is empty.
const DefaultTable = "prescription:simples=29.90,prescription:controlada=49.90,prescription:azul=59.90," +
	"exam:laboratorial=29.90,exam:imagem=39.90,consultation:clinico_geral=79.90,consultation:psicologia=99.90"

// Table is read-only after construction and safe for concurrent use.
type Table struct {
	prices map[string]entities.Money
}

var _ interfaces.IPriceLookup = (*Table)(nil)

// NewTable builds a table; later entries override earlier ones with the same key.
func NewTable(entries ...[]entities.PriceEntry) *Table {
	t := &Table{prices: make(map[string]entities.Money)}
	for _, list := range entries {
		for _, e := range list {
			t.prices[entities.PriceKey(e.ProductType, strings.ToLower(e.Subtype))] = e.Price
		}
	}
	return t
}

func (t *Table) GetPrice(productType entities.RequestType, subtype string) (entities.Money, bool) {
	m, ok := t.prices[entities.PriceKey(productType, strings.ToLower(strings.TrimSpace(subtype)))]
	return m, ok
}

func (t *Table) Len() int { return len(t.prices) }

// Parse reads "type:subtype=amount" pairs separated by commas.
func Parse(s string) ([]entities.PriceEntry, error) {
	var out []entities.PriceEntry
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, amount, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("price entry %q: missing '='", item)
		}
		typ, subtype, ok := strings.Cut(strings.TrimSpace(key), ":")
		if !ok {
			return nil, fmt.Errorf("price entry %q: expected type:subtype", item)
		}
		rt := entities.RequestType(strings.ToLower(strings.TrimSpace(typ)))
		if !rt.Valid() {
			return nil, fmt.Errorf("price entry %q: unknown type %q", item, typ)
		}
		subtype = strings.ToLower(strings.TrimSpace(subtype))
		if subtype == "" {
			return nil, fmt.Errorf("price entry %q: empty subtype", item)
		}
		m, err := entities.ParseMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("price entry %q: %w", item, err)
		}
		out = append(out, entities.PriceEntry{ProductType: rt, Subtype: subtype, Price: m})
	}
	return out, nil
}
