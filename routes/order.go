package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/controllers/order"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/middleware"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/order")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		userGroup := orders.Group("/")
		userGroup.Use(middleware.ValidateToken)
		{
			// Orders of the authenticated buyer
			userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		}

		adminGroup := orders.Group("/")
		adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminGroup.GET("/all-orders", orderControllers.GetAllOrdersHandler(db))
			adminGroup.GET("/export", orderControllers.ExportOrdersToExcel(db))
			adminGroup.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			adminGroup.PUT("/status/:orderID", orderControllers.UpdateOrderStatusHandler(db))
		}
	}
}
