package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/controllers/category"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/middleware"
)

func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categories := api.Group("/category")
	{
		categories.GET("/get-category", categoryControllers.GetAllCategories(db))
		categories.GET("/single-category/:slug", categoryControllers.GetSingleCategory(db))

		adminGroup := categories.Group("/")
		adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminGroup.POST("/create-category", categoryControllers.CreateCategory(db))
			adminGroup.PUT("/update-category/:id", categoryControllers.UpdateCategory(db))
			adminGroup.DELETE("/delete-category/:id", categoryControllers.DeleteCategory(db))
		}
	}
}
