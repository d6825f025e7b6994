package routes

import (
	"github.com/gin-gonic/gin"
	settingsControllers "github.com/sunutees/storefront-api/controllers/settings"
	"github.com/sunutees/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupSettingsRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin/settings", middleware.ValidateAPIKey)
	{
		admin.GET("/tax", settingsControllers.GetTaxSettingsHandler(db))
		admin.PUT("/tax", settingsControllers.UpdateTaxSettingsHandler(db))
	}
}
