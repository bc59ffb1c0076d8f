package categoryControllers

import (
	"bytes"
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
	require.NoError(t, db.AutoMigrate(&models.Category{}))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/create-category", CreateCategory(db))
	r.GET("/get-category", GetAllCategories(db))
	r.GET("/single-category/:slug", GetSingleCategory(db))
	r.DELETE("/delete-category/:id", DeleteCategory(db))
	return r
}

func TestCreateAndFetchCategory(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(db)

	body, _ := json.Marshal(gin.H{"name": "Smart Watches"})
	req := httptest.NewRequest(http.MethodPost, "/create-category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/single-category/smart-watches", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Category models.Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Smart Watches", resp.Category.Name)
	assert.Equal(t, "smart-watches", resp.Category.Slug)
}

func TestDeleteCategory(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Category{Name: "Books", Slug: "books"}).Error)
	r := newRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete-category/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete-category/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
