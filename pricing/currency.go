package pricing

import (
	"errors"
	"strings"
)

// Currency is the closed set of currencies the store sells in. Prices in the
// catalog are stored in XOF; everything else is derived through the rate table.
type Currency string

const (
	CurrencyXOF Currency = "XOF" // base currency
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// ParseCurrency maps a client-submitted code onto the closed enum. An
// unrecognized code is an error, never a fallback: defaulting a tampered
// code to XOF would price the cart at a 1:1 rate.
func ParseCurrency(code string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case string(CurrencyXOF):
		return CurrencyXOF, nil
	case string(CurrencyEUR):
		return CurrencyEUR, nil
	case string(CurrencyUSD):
		return CurrencyUSD, nil
	default:
		return "", ErrUnknownCurrency
	}
}

// RateTable maps base-currency amounts to each supported currency.
// It must be total over the enum, with XOF mapped to exactly 1.
type RateTable map[Currency]float64

// DefaultRates are the fixed server-held conversion rates from XOF.
func DefaultRates() RateTable {
	return RateTable{
		CurrencyXOF: 1,
		CurrencyEUR: 0.0015245, // 655.957 XOF per EUR (CFA peg)
		CurrencyUSD: 0.0016500,
	}
}

// Converter converts base-currency amounts using an injected rate table,
// so tests can substitute rates without touching shared state.
type Converter struct {
	rates RateTable
}

func NewConverter(rates RateTable) (*Converter, error) {
	for _, cur := range []Currency{CurrencyXOF, CurrencyEUR, CurrencyUSD} {
		if _, ok := rates[cur]; !ok {
			return nil, errors.New("rate table missing entry for " + string(cur))
		}
	}
	if rates[CurrencyXOF] != 1 {
		return nil, errors.New("base currency rate must be 1")
	}
	return &Converter{rates: rates}, nil
}

// Convert maps an amount in the base currency to the target currency.
// No rounding happens here; rounding is a formatting concern.
func (c *Converter) Convert(amountInBase float64, target Currency) float64 {
	return amountInBase * c.rates[target]
}
