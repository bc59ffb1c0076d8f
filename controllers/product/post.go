package productcontroller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

const maxPhotoBytes = 1 << 20 // 1MB

// CreateProduct creates a new product from a multipart form, photo included.
// POST /api/v1/product/create-product (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		categoryStr := c.PostForm("category")
		quantityStr := c.PostForm("quantity")
		switch {
		case name == "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		case description == "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
			return
		case priceStr == "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price is required"})
			return
		case categoryStr == "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required"})
			return
		case quantityStr == "":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(categoryID)).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			}
			return
		}

		shipping := c.PostForm("shipping") == "1" || c.PostForm("shipping") == "true"

		photo, photoType, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:        name,
			Slug:        slug.Make(name),
			Description: description,
			Price:       price,
			Quantity:    quantity,
			CategoryID:  category.ID,
			Shipping:    shipping,
			Photo:       photo,
			PhotoType:   photoType,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

// readPhoto pulls the optional "photo" form file into memory. Photos live in
// the product row itself, capped at 1MB.
func readPhoto(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, "", nil // photo is optional
	}
	if fileHeader.Size > maxPhotoBytes {
		return nil, "", errPhotoTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxPhotoBytes {
		return nil, "", errPhotoTooLarge
	}
	return data, fileHeader.Header.Get("Content-Type"), nil
}
