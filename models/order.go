package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "Not Processed"
	OrderStatusProcessing   OrderStatus = "Processing"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

var (
	ErrOrderNoProducts = errors.New("order must contain at least one product")
	ErrOrderNoPayment  = errors.New("order payment must be successful")
	ErrOrderNoBuyer    = errors.New("order buyer is required")
)

// PaymentResult is the processor's answer to a sale, stored verbatim on the
// order so the admin UI can show what the processor reported.
type PaymentResult struct {
	Success       bool   `gorm:"not null" json:"success"`
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	Message       string `json:"message,omitempty"`
}

type Order struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	OrderRef  string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	BuyerID   string        `gorm:"not null;index" json:"buyer"`
	Buyer     User          `gorm:"foreignKey:BuyerID" json:"-"`
	Products  []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	Payment   PaymentResult `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Status    OrderStatus   `gorm:"type:VARCHAR(20);default:'Not Processed'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OrderItem is a cart line exactly as the buyer submitted it. Price is the
// client-supplied figure the charge was computed from, not the catalog price
// at fulfilment time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CreateOrder persists an order after enforcing the ledger invariants:
// non-empty product list, successful payment, known buyer.
func CreateOrder(db *gorm.DB, order *Order) error {
	if len(order.Products) == 0 {
		return ErrOrderNoProducts
	}
	if !order.Payment.Success {
		return ErrOrderNoPayment
	}
	if order.BuyerID == "" {
		return ErrOrderNoBuyer
	}
	if order.Status == "" {
		order.Status = OrderStatusNotProcessed
	}
	return db.Create(order).Error
}

// ParseOrderStatus maps a request string onto the fixed status enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range []OrderStatus{
		OrderStatusNotProcessed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		if s == string(status) {
			return status, nil
		}
	}
	return "", errors.New("invalid order status")
}
