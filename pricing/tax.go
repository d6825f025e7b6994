package pricing

import "github.com/sunutees/storefront-api/models"

// ComputeTax derives the tax amount for a checkout. The subtotal passed in
// must already be discounted and in the target currency.
//
// Only the first configured rate is applied even when two are stored; the
// second slot is a schema allowance the billing flow has never used.
func ComputeTax(c *Converter, discountedSubtotal float64, currency Currency, settings *models.TaxSettings) float64 {
	if settings == nil || !settings.IsActive || len(settings.Rates) == 0 {
		return 0
	}

	rate := settings.Rates[0]
	switch rate.Type {
	case models.TaxRateTypePercentage:
		return discountedSubtotal * rate.Rate
	case models.TaxRateTypeFixed:
		// fixed rates are stored in the base currency
		return c.Convert(rate.Rate, currency)
	default:
		return 0
	}
}

// OrderTotal is the one total formula. The subtotal here is the validated
// pre-discount sum, and tax has already been computed on the discounted
// subtotal, never on the raw one. Do not reorder.
func OrderTotal(preDiscountSubtotal, shippingFee, tax, discount float64) float64 {
	return preDiscountSubtotal + shippingFee + tax - discount
}
