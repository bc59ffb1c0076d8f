package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Product) {
	t.Helper()
	category := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		Name:        "Smart Watch",
		Slug:        "smart-watch",
		Description: "Tracks fitness metrics",
		Price:       250,
		Quantity:    20,
		CategoryID:  category.ID,
		Photo:       []byte{0xFF, 0xD8, 0xFF},
		PhotoType:   "image/jpeg",
	}
	require.NoError(t, db.Create(&product).Error)
	return category, product
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/get-product", GetProducts(db))
	r.GET("/get-product/:slug", GetProductBySlug(db))
	r.GET("/product-photo/:pid", ProductPhoto(db))
	r.GET("/search/:keyword", SearchProducts(db))
	r.GET("/product-category/:slug", ProductsByCategory(db))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetProductBySlug(t *testing.T) {
	db := openTestDB(t)
	_, product := seedCatalog(t, db)
	r := newRouter(db)

	w := get(r, "/get-product/"+product.Slug)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Product models.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Smart Watch", resp.Product.Name)
	assert.Equal(t, 20, resp.Product.Quantity)

	assert.Equal(t, http.StatusNotFound, get(r, "/get-product/no-such-slug").Code)
}

func TestProductPhoto(t *testing.T) {
	db := openTestDB(t)
	_, product := seedCatalog(t, db)
	r := newRouter(db)

	w := get(r, "/product-photo/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, product.Photo, w.Body.Bytes())
}

func TestSearchProducts(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	r := newRouter(db)

	w := get(r, "/search/fitness")
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Smart Watch", products[0].Name)

	w = get(r, "/search/nonexistent")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Empty(t, products)
}

func TestProductsByCategory(t *testing.T) {
	db := openTestDB(t)
	category, _ := seedCatalog(t, db)
	r := newRouter(db)

	w := get(r, "/product-category/"+category.Slug)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 1)

	assert.Equal(t, http.StatusNotFound, get(r, "/product-category/no-such-category").Code)
}
