package catalog

import (
	"context"
	"errors"
)

// The three kinds are distinguishable because they drive different
// customer-facing messages upstream.
var (
	ErrNotFound   = errors.New("product not found in catalog")
	ErrOutOfStock = errors.New("product is out of stock")
	ErrNoPriceSet = errors.New("product has no price set")
)

// PriceInfo is the authoritative pricing read for a single product.
// Prices are in the base currency (XOF).
type PriceInfo struct {
	CurrentPrice float64
	// OriginalPrice is the pre-discount price, 0 when the product
	// has never been marked down.
	OriginalPrice float64
	InStock       bool
}

// Oracle is the read-only catalog collaborator. The checkout core never
// writes through it; catalog editors mutate prices out of band.
type Oracle interface {
	FetchPrice(ctx context.Context, productID string) (PriceInfo, error)
}
