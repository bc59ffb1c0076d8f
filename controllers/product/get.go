package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

// Photo bytes stay out of listing payloads; the dedicated photo endpoint
// serves them with the stored content type.
var productListColumns = []string{
	"id", "name", "slug", "description", "price", "quantity",
	"category_id", "shipping", "created_at", "updated_at",
}

// GET /api/v1/product/get-product/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productSlug := c.Param("slug")
		if productSlug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
			return
		}

		var product models.Product
		if err := db.Select(productListColumns).Preload("Category").
			First(&product, "slug = ?", productSlug).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// GET /api/v1/product/product-photo/:pid
func ProductPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := strconv.ParseUint(c.Param("pid"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Select("photo", "photo_type").First(&product, uint(pid)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve photo"})
			}
			return
		}
		if len(product.Photo) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product has no photo"})
			return
		}

		contentType := product.PhotoType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, product.Photo)
	}
}
