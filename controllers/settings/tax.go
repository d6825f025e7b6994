package settingsControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunutees/storefront-api/models"
	"gorm.io/gorm"
)

type TaxRateInput struct {
	Name string  `json:"name" binding:"required"`
	Type string  `json:"type" binding:"required,oneof=percentage fixed"`
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

type TaxSettingsInput struct {
	IsActive bool           `json:"is_active"`
	TaxRates []TaxRateInput `json:"tax_rates" binding:"max=2,dive"`
}

// GET /admin/settings/tax
func GetTaxSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s models.TaxSettings
		err := db.Preload("Rates", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			First(&s).Error
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"is_active": false, "tax_rates": []models.TaxRate{}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tax settings"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// PUT /admin/settings/tax — replaces the singleton settings row
func UpdateTaxSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TaxSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		s := models.TaxSettings{IsActive: input.IsActive}
		for i, r := range input.TaxRates {
			s.Rates = append(s.Rates, models.TaxRate{
				Position: i,
				Name:     r.Name,
				Type:     models.TaxRateType(r.Type),
				Rate:     r.Rate,
			})
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.TaxRate{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.TaxSettings{}).Error; err != nil {
				return err
			}
			return tx.Create(&s).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax settings"})
			return
		}

		c.JSON(http.StatusOK, s)
	}
}
