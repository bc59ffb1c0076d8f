package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/checkout"
)

// GET /api/v1/product/braintree/token
func ClientTokenHandler(gateway checkout.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := gateway.GenerateClientToken(c.Request.Context())
		if err != nil {
			log.Printf("❌ Failed to generate client token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate client token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientToken": token})
	}
}

// POST /api/v1/product/braintree/payment
//
// Failure statuses distinguish the three things the cart UI must tell apart:
// 400 bad input, 402 card declined, 409 stock ran out after capture, 500
// anything else.
func CheckoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		buyerID, _ := buyerIDVal.(string)

		var req checkout.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
			return
		}

		result, err := svc.Checkout(c.Request.Context(), buyerID, req)
		if err != nil {
			var (
				validationErr *checkout.ValidationError
				declinedErr   *checkout.DeclinedError
				conflictErr   *checkout.StockConflictError
				paymentErr    *checkout.PaymentError
			)
			switch {
			case errors.As(err, &validationErr):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Reason})
			case errors.As(err, &declinedErr):
				c.JSON(http.StatusPaymentRequired, gin.H{"success": false, "message": declinedErr.Message})
			case errors.As(err, &conflictErr):
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"message": conflictErr.Error(),
					"itemId":  conflictErr.ProductID,
				})
			case errors.As(err, &paymentErr):
				log.Printf("❌ Payment gateway failure: %v", paymentErr)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "payment error"})
			default:
				log.Printf("❌ Checkout failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "checkout failed"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"ok":            true,
			"transactionId": result.TransactionID,
			"amount":        result.Amount,
		})
	}
}

type checkInventoryInput struct {
	Cart []checkout.CartLine `json:"cart"`
}

// POST /api/v1/product/check-inventory
func CheckInventoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkInventoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
			return
		}

		status, err := checkout.CheckInventory(c.Request.Context(), db, input.Cart)
		if err != nil {
			var validationErr *checkout.ValidationError
			if errors.As(err, &validationErr) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Reason})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to check inventory"})
			return
		}

		if !status.Success {
			c.JSON(http.StatusOK, gin.H{
				"success":   false,
				"message":   status.Message,
				"itemId":    status.ItemID,
				"available": status.Available,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
