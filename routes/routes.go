package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/sunutees/storefront-api/controllers/checkout"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up the checkout, payment,
// order, and settings route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps checkoutControllers.Deps) {
	// checkout pipeline
	SetupCheckoutRoutes(r, deps)

	// payment webhook
	SetupPaymentRoutes(r, deps)

	// order queries and back-office updates
	SetupOrderRoutes(r, db)

	// admin settings
	SetupSettingsRoutes(r, db)
}
