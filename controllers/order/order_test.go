package orderControllers

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
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, buyerID, ref string) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef: ref,
		BuyerID:  buyerID,
		Products: []models.OrderItem{{ProductID: 1, Price: 5, Quantity: 1}},
		Payment:  models.PaymentResult{Success: true, TransactionID: "txn", Amount: "5.00"},
		Status:   models.OrderStatusNotProcessed,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestGetUserOrdersHandler(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2", Email: "u2@example.com"}).Error)
	seedOrder(t, db, "u1", "ref-1")
	seedOrder(t, db, "u2", "ref-2")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders", asUser("u1"), GetUserOrdersHandler(db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ref-1", orders[0].OrderRef)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com"}).Error)
	order := seedOrder(t, db, "u1", "ref-1")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/status/:orderID", UpdateOrderStatusHandler(db))

	put := func(id string, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"status": status})
		req := httptest.NewRequest(http.MethodPut, "/status/"+id, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := put("1", "Shipped")
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	assert.Equal(t, http.StatusBadRequest, put("1", "Lost In Transit").Code)
	assert.Equal(t, http.StatusNotFound, put("999", "Shipped").Code)
}
