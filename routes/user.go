package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/controllers/user"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/middleware"
)

// SetupUserRoutes registers the "/user" endpoints. Requires JWT middleware.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
	}
}
