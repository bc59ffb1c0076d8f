package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

const DefaultPageSize = 12

// GET /api/v1/product/get-product — newest products, photo excluded
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Select(productListColumns).Preload("Category").
			Order("created_at DESC").
			Limit(DefaultPageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "countTotal": len(products), "products": products})
	}
}

// GET /api/v1/product/product-list/:page — paginated catalog
func ProductList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.Param("page"))
		if err != nil || page < 1 {
			page = 1
		}

		var products []models.Product
		if err := db.Select(productListColumns).
			Order("created_at DESC").
			Offset((page - 1) * DefaultPageSize).
			Limit(DefaultPageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/product-count
func ProductCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
	}
}

type productFiltersInput struct {
	Checked []uint    `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// POST /api/v1/product/product-filters — filter by categories and price range
func ProductFilters(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productFiltersInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		query := db.Select(productListColumns).Model(&models.Product{})
		if len(input.Checked) > 0 {
			query = query.Where("category_id IN ?", input.Checked)
		}
		if len(input.Radio) == 2 {
			query = query.Where("price >= ? AND price <= ?", input.Radio[0], input.Radio[1])
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/search/:keyword
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Param("keyword")
		if keyword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search keyword is required"})
			return
		}

		likePattern := "%" + keyword + "%"
		var products []models.Product
		if err := db.Select(productListColumns).
			Where("name LIKE ? OR description LIKE ?", likePattern, likePattern).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/v1/product/related-product/:pid/:cid — same category, product excluded
func RelatedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := strconv.ParseUint(c.Param("pid"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		cid, err := strconv.ParseUint(c.Param("cid"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		var products []models.Product
		if err := db.Select(productListColumns).
			Where("category_id = ? AND id <> ?", uint(cid), uint(pid)).
			Limit(3).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/product-category/:slug — products of one category
func ProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "slug = ?", c.Param("slug")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			}
			return
		}

		var products []models.Product
		if err := db.Select(productListColumns).
			Where("category_id = ?", category.ID).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "category": category, "products": products})
	}
}
