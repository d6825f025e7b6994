package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/sunutees/storefront-api/controllers/checkout"
	paymentControllers "github.com/sunutees/storefront-api/controllers/payment"
	"github.com/sunutees/storefront-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, deps checkoutControllers.Deps) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.PaymentWebhookAuth(),
			paymentControllers.PaymentWebhookHandler(deps.Store),
		)
	}
}
