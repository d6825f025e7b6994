package models

import "time"

type TaxRateType string

const (
	TaxRateTypePercentage TaxRateType = "percentage" // rate is a fraction (0.1 = 10%)
	TaxRateTypeFixed      TaxRateType = "fixed"      // rate is an amount in the base currency
)

// TaxSettings is a singleton row; at most two rates are configured.
// Only the first rate (by Position) is ever applied — the second slot
// exists in the schema but is a known limitation, kept for parity with
// how the store has always billed.
type TaxSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IsActive  bool      `json:"is_active"`
	Rates     []TaxRate `gorm:"foreignKey:TaxSettingsID;constraint:OnDelete:CASCADE" json:"tax_rates"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaxRate struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	TaxSettingsID uint        `gorm:"index" json:"-"`
	Position      int         `gorm:"not null" json:"-"` // application order; only position 0 is applied
	Name          string      `json:"name"`
	Type          TaxRateType `gorm:"type:VARCHAR(10)" json:"type"`
	Rate          float64     `json:"rate"`
}
