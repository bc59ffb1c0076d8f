package checkout

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

// CartLine is one entry of the client-held cart, submitted wholesale at
// checkout. Quantity defaults to 1 when omitted.
type CartLine struct {
	ProductID uint    `json:"_id"`
	Price     float64 `json:"price"`
	Quantity  *int    `json:"quantity,omitempty"`
}

func (l CartLine) Qty() int {
	if l.Quantity == nil {
		return 1
	}
	return *l.Quantity
}

// InventoryStatus is the pre-check verdict. Success false carries the first
// offending item and how much stock it actually has.
type InventoryStatus struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ItemID    uint   `json:"itemId,omitempty"`
	Available int    `json:"available"`
}

func validateCart(cart []CartLine) error {
	if len(cart) == 0 {
		return &ValidationError{Reason: "cart is empty"}
	}
	for _, line := range cart {
		if line.ProductID == 0 {
			return &ValidationError{Reason: "cart line is missing a product id"}
		}
		if line.Qty() <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("invalid quantity for item %d", line.ProductID)}
		}
		if line.Price < 0 || math.IsNaN(line.Price) || math.IsInf(line.Price, 0) {
			return &ValidationError{Reason: fmt.Sprintf("invalid price for item %d", line.ProductID)}
		}
	}
	return nil
}

// CheckInventory confirms every cart line has sufficient stock. It is a pure
// read and reserves nothing, so the verdict can be stale by the time the
// decrement runs; the conditional decrement re-checks authoritatively.
func CheckInventory(ctx context.Context, db *gorm.DB, cart []CartLine) (*InventoryStatus, error) {
	if err := validateCart(cart); err != nil {
		return nil, err
	}

	for _, line := range cart {
		stock, found, err := models.ProductStock(db.WithContext(ctx), line.ProductID)
		if err != nil {
			return nil, err
		}
		if !found {
			return &InventoryStatus{
				Success: false,
				Message: fmt.Sprintf("product %d not found", line.ProductID),
				ItemID:  line.ProductID,
			}, nil
		}
		if stock < line.Qty() {
			return &InventoryStatus{
				Success:   false,
				Message:   fmt.Sprintf("insufficient quantity for item %d", line.ProductID),
				ItemID:    line.ProductID,
				Available: stock,
			}, nil
		}
	}
	return &InventoryStatus{Success: true}, nil
}
