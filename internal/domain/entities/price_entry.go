package entities

// PriceEntry is one row of the server-side price table, keyed by (product type, subtype).
//
// Storage model (DynamoDB):
//   - PK: id ("<product_type>#<subtype>")
type PriceEntry struct {
	ProductType RequestType `json:"product_type"`
	Subtype     string      `json:"subtype"`
	Price       Money       `json:"-"`
}

func PriceKey(productType RequestType, subtype string) string {
	return string(productType) + "#" + subtype
}
