package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

var errPhotoTooLarge = errors.New("Photo must be less than 1MB")

// UpdateProduct replaces the mutable fields of a product.
// PUT /api/v1/product/update-product/:pid (admin)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := strconv.ParseUint(c.Param("pid"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(pid)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		if name := c.PostForm("name"); name != "" {
			product.Name = name
			product.Slug = slug.Make(name)
		}
		if description := c.PostForm("description"); description != "" {
			product.Description = description
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if quantityStr := c.PostForm("quantity"); quantityStr != "" {
			quantity, err := strconv.Atoi(quantityStr)
			if err != nil || quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
			product.Quantity = quantity
		}
		if categoryStr := c.PostForm("category"); categoryStr != "" {
			categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			var category models.Category
			if err := db.First(&category, uint(categoryID)).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}
		if shippingStr := c.PostForm("shipping"); shippingStr != "" {
			product.Shipping = shippingStr == "1" || shippingStr == "true"
		}

		photo, photoType, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if photo != nil {
			product.Photo = photo
			product.PhotoType = photoType
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}
