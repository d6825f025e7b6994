package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sunutees/storefront-api/catalog"
)

// PriceTolerance absorbs floating rounding between the client's math and
// ours. Anything beyond one cent of the target currency is a real mismatch.
const PriceTolerance = 0.01

// CartItem is a client-submitted line. It is never trusted: Price is the
// client's claim, re-derived from the catalog before anything is persisted.
type CartItem struct {
	ProductID       string  `json:"productId" binding:"required"`
	ProductTitle    string  `json:"productTitle" binding:"required"`
	ProductSlug     string  `json:"productSlug"`
	VariantID       string  `json:"variantId"`
	VariantTitle    string  `json:"variantTitle"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"required,gt=0"` // claimed per-unit price, target currency
	ProductImageURL string  `json:"productImageUrl"`
}

// RecalculatedItem is the server-side repricing of one cart line.
// ValidatedPrice and OriginalPrice are line totals, not per-unit prices.
// The slice stays index-aligned with the submitted cart even for failed
// lines, because the orchestrator zips the two when building order items.
type RecalculatedItem struct {
	ProductID       string  `json:"productId"`
	OriginalPrice   float64 `json:"originalPrice"`   // client-claimed line total
	ValidatedPrice  float64 `json:"validatedPrice"`  // catalog-derived line total, 0 when the line failed
	PriceDifference float64 `json:"priceDifference"` // validated - claimed
}

// Result classifies one checkout attempt. Critical errors block; warnings
// never do — the server-computed Subtotal and Discount are what downstream
// uses either way.
type Result struct {
	IsValid           bool               `json:"isValid"`
	HasCriticalErrors bool               `json:"hasCriticalErrors"`
	Errors            []string           `json:"errors"`
	Warnings          []string           `json:"warnings"`
	RecalculatedItems []RecalculatedItem `json:"recalculatedItems"`
	Subtotal          float64            `json:"subtotal"`
	OriginalSubtotal  float64            `json:"originalSubtotal"`
	Discount          float64            `json:"discount"`
	OriginalDiscount  float64            `json:"originalDiscount"` // client-claimed discount, echoed for logging
}

// Validator re-derives every monetary figure in a cart from the catalog
// oracle. Price drift (catalog edited between page load and checkout, rate
// rounding) is expected and benign, so it is corrected and recorded as a
// warning rather than blocking a paying customer. A line that cannot be
// priced at all is a different class: the whole checkout is blocked.
type Validator struct {
	oracle catalog.Oracle
	conv   *Converter
}

func NewValidator(oracle catalog.Oracle, conv *Converter) *Validator {
	return &Validator{oracle: oracle, conv: conv}
}

// Validate re-prices every item in cart order and reconciles the client's
// claimed subtotal and discount against the recomputed ones.
func (v *Validator) Validate(ctx context.Context, items []CartItem, currency Currency, clientSubtotal, clientDiscount float64) Result {
	res := Result{
		Errors:            []string{},
		Warnings:          []string{},
		RecalculatedItems: make([]RecalculatedItem, 0, len(items)),
		OriginalDiscount:  clientDiscount,
	}

	for _, item := range items {
		clientLineTotal := item.Price * float64(item.Quantity)

		info, err := v.oracle.FetchPrice(ctx, item.ProductID)
		if err != nil {
			res.Errors = append(res.Errors, itemError(item, err))
			// placeholder keeps RecalculatedItems aligned with the cart
			res.RecalculatedItems = append(res.RecalculatedItems, RecalculatedItem{
				ProductID:       item.ProductID,
				OriginalPrice:   clientLineTotal,
				ValidatedPrice:  0,
				PriceDifference: -clientLineTotal,
			})
			continue
		}

		pricePerUnit := v.conv.Convert(info.CurrentPrice, currency)
		validatedLineTotal := pricePerUnit * float64(item.Quantity)

		if math.Abs(validatedLineTotal-clientLineTotal) > PriceTolerance {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"price mismatch for %q (%s): client total %.2f %s, validated total %.2f %s",
				item.ProductTitle, item.ProductID, clientLineTotal, currency, validatedLineTotal, currency))
		}

		res.Subtotal += validatedLineTotal

		// A genuine markdown contributes the pre-discount price to the
		// original subtotal; anything else contributes no discount.
		if info.OriginalPrice > info.CurrentPrice {
			res.OriginalSubtotal += v.conv.Convert(info.OriginalPrice, currency) * float64(item.Quantity)
		} else {
			res.OriginalSubtotal += validatedLineTotal
		}

		res.RecalculatedItems = append(res.RecalculatedItems, RecalculatedItem{
			ProductID:       item.ProductID,
			OriginalPrice:   clientLineTotal,
			ValidatedPrice:  validatedLineTotal,
			PriceDifference: validatedLineTotal - clientLineTotal,
		})
	}

	res.Discount = math.Max(0, res.OriginalSubtotal-res.Subtotal)

	if math.Abs(res.Discount-clientDiscount) > PriceTolerance {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"discount mismatch: client claimed %.2f, validated %.2f", clientDiscount, res.Discount))
	}
	if math.Abs(res.Subtotal-clientSubtotal) > PriceTolerance {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"subtotal mismatch: client claimed %.2f, validated %.2f", clientSubtotal, res.Subtotal))
	}

	res.HasCriticalErrors = len(res.Errors) > 0
	res.IsValid = !res.HasCriticalErrors && len(res.Warnings) == 0
	return res
}

// itemError turns a catalog failure into an actionable customer-facing
// message naming the product.
func itemError(item CartItem, err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fmt.Sprintf("%q (%s) is no longer available", item.ProductTitle, item.ProductID)
	case errors.Is(err, catalog.ErrOutOfStock):
		return fmt.Sprintf("%q (%s) is out of stock", item.ProductTitle, item.ProductID)
	case errors.Is(err, catalog.ErrNoPriceSet):
		return fmt.Sprintf("%q (%s) has no price set", item.ProductTitle, item.ProductID)
	default:
		return fmt.Sprintf("could not verify price for %q (%s): %v", item.ProductTitle, item.ProductID, err)
	}
}
