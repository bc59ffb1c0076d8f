package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/checkout"
	paymentControllers "github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/controllers/payment"
	productControllers "github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/controllers/product"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/middleware"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, svc *checkout.Service, gateway checkout.Gateway) {
	products := api.Group("/product")
	{
		// ──────────────── Public Catalog ────────────────
		products.GET("/get-product", productControllers.GetProducts(db))
		products.GET("/get-product/:slug", productControllers.GetProductBySlug(db))
		products.GET("/product-photo/:pid", productControllers.ProductPhoto(db))
		products.GET("/product-list/:page", productControllers.ProductList(db))
		products.GET("/product-count", productControllers.ProductCount(db))
		products.POST("/product-filters", productControllers.ProductFilters(db))
		products.GET("/search/:keyword", productControllers.SearchProducts(db))
		products.GET("/related-product/:pid/:cid", productControllers.RelatedProducts(db))
		products.GET("/product-category/:slug", productControllers.ProductsByCategory(db))

		// ──────────────── Checkout ────────────────
		products.GET("/braintree/token", paymentControllers.ClientTokenHandler(gateway))
		products.POST("/check-inventory", paymentControllers.CheckInventoryHandler(db))
		products.POST("/braintree/payment", middleware.ValidateToken, paymentControllers.CheckoutHandler(svc))

		// ──────────────── Admin CRUD ────────────────
		adminGroup := products.Group("/")
		adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			adminGroup.POST("/create-product", productControllers.CreateProduct(db))
			adminGroup.PUT("/update-product/:pid", productControllers.UpdateProduct(db))
			adminGroup.DELETE("/delete-product/:pid", productControllers.DeleteProduct(db))
		}
	}
}
