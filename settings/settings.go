package settings

import (
	"context"
	"errors"

	"github.com/sunutees/storefront-api/models"
	"gorm.io/gorm"
)

// Resolver fetches the active tax configuration. A nil result (no settings
// row was ever created) is not an error; callers treat it as tax inactive.
type Resolver interface {
	TaxSettings(ctx context.Context) (*models.TaxSettings, error)
}

type gormResolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) Resolver {
	return &gormResolver{db: db}
}

func (r *gormResolver) TaxSettings(ctx context.Context) (*models.TaxSettings, error) {
	var s models.TaxSettings
	err := r.db.WithContext(ctx).
		Preload("Rates", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
