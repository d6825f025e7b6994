package routes

import (
	"github.com/gin-gonic/gin"
	checkoutControllers "github.com/sunutees/storefront-api/controllers/checkout"
)

func SetupCheckoutRoutes(r *gin.Engine, deps checkoutControllers.Deps) {
	r.POST("/checkout", checkoutControllers.ProcessCheckoutHandler(deps))
}
