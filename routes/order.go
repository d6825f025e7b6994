package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/sunutees/storefront-api/controllers/order"
	"github.com/sunutees/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Customer order history (bearer token from the identity service)
		orders.GET("/mine", middleware.ValidateToken, orderControllers.GetMyOrdersHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Back-office endpoints (API key)
		admin := orders.Group("", middleware.ValidateAPIKey)
		{
			admin.GET("/", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/export", orderControllers.ExportOrdersToExcel(db))
			admin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			admin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		}
	}
}
