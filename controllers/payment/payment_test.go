package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/checkout"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

type stubGateway struct {
	result *checkout.SaleResult
	err    error
}

func (g *stubGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return "stub-client-token", nil
}

func (g *stubGateway) Sale(ctx context.Context, req checkout.SaleRequest) (*checkout.SaleResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	require.NoError(t, db.Create(&models.User{ID: "buyer-1", Email: "buyer@example.com"}).Error)
	return db
}

// asBuyer stands in for the JWT middleware.
func asBuyer(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newRouter(db *gorm.DB, gateway checkout.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := checkout.NewService(db, gateway, nil)
	r := gin.New()
	r.GET("/braintree/token", ClientTokenHandler(gateway))
	r.POST("/braintree/payment", asBuyer("buyer-1"), CheckoutHandler(svc))
	r.POST("/check-inventory", CheckInventoryHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, quantity int) models.Product {
	t.Helper()
	product := models.Product{Name: "widget", Slug: "widget", Price: 10.00, Quantity: quantity}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestClientTokenHandler(t *testing.T) {
	db := openTestDB(t)
	r := newRouter(db, &stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/braintree/token", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stub-client-token", resp["clientToken"])
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 3)
	gateway := &stubGateway{result: &checkout.SaleResult{Success: true, TransactionID: "txn-7"}}
	r := newRouter(db, gateway)

	w := postJSON(t, r, "/braintree/payment", gin.H{
		"nonce": "fake-valid-nonce",
		"cart":  []gin.H{{"_id": product.ID, "price": 10.00, "quantity": 2}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, "txn-7", resp["transactionId"])
	assert.Equal(t, "20.00", resp["amount"])
}

func TestCheckoutHandlerStatusMapping(t *testing.T) {
	t.Run("missing input is 400", func(t *testing.T) {
		db := openTestDB(t)
		r := newRouter(db, &stubGateway{result: &checkout.SaleResult{Success: true}})
		w := postJSON(t, r, "/braintree/payment", gin.H{"nonce": "", "cart": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("soft decline is 402", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, 3)
		r := newRouter(db, &stubGateway{result: &checkout.SaleResult{Success: false, Message: "Declined"}})
		w := postJSON(t, r, "/braintree/payment", gin.H{
			"nonce": "fake-valid-nonce",
			"cart":  []gin.H{{"_id": product.ID, "price": 10.00, "quantity": 1}},
		})
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Declined", resp["message"])
	})

	t.Run("stock conflict after capture is 409", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, 1)
		r := newRouter(db, &stubGateway{result: &checkout.SaleResult{Success: true, TransactionID: "txn-1"}})
		w := postJSON(t, r, "/braintree/payment", gin.H{
			"nonce": "fake-valid-nonce",
			"cart":  []gin.H{{"_id": product.ID, "price": 10.00, "quantity": 2}},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.NotEmpty(t, resp["itemId"])
	})

	t.Run("hard gateway failure is 500", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, 3)
		r := newRouter(db, &stubGateway{err: errors.New("gateway down")})
		w := postJSON(t, r, "/braintree/payment", gin.H{
			"nonce": "fake-valid-nonce",
			"cart":  []gin.H{{"_id": product.ID, "price": 10.00, "quantity": 1}},
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestCheckoutHandlerRequiresAuth(t *testing.T) {
	db := openTestDB(t)
	gin.SetMode(gin.TestMode)
	svc := checkout.NewService(db, &stubGateway{}, nil)
	r := gin.New()
	r.POST("/braintree/payment", CheckoutHandler(svc)) // no identity middleware

	w := postJSON(t, r, "/braintree/payment", gin.H{"nonce": "n", "cart": []gin.H{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckInventoryHandler(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, 2)
	r := newRouter(db, &stubGateway{})

	t.Run("sufficient", func(t *testing.T) {
		w := postJSON(t, r, "/check-inventory", gin.H{
			"cart": []gin.H{{"_id": product.ID, "quantity": 2}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
	})

	t.Run("insufficient reports item and available", func(t *testing.T) {
		w := postJSON(t, r, "/check-inventory", gin.H{
			"cart": []gin.H{{"_id": product.ID, "quantity": 3}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, float64(product.ID), resp["itemId"])
		assert.Equal(t, float64(2), resp["available"])
	})

	t.Run("empty cart is 400", func(t *testing.T) {
		w := postJSON(t, r, "/check-inventory", gin.H{"cart": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
