package checkout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/metrics"
	"github.com/cs4218/cs4218-2510-ecom-project-team018-sub000/models"
)

// ValidationError rejects a checkout before any side effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// DeclinedError is a soft decline: the processor answered but refused the
// charge. No stock was touched and no order exists.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string { return "payment declined: " + e.Message }

// PaymentError is a hard gateway failure (transport, processor exception).
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return "payment error: " + e.Err.Error() }
func (e *PaymentError) Unwrap() error { return e.Err }

// StockConflictError means the conditional decrement lost the race after the
// payment was already captured. Prior decrements of the same checkout were
// compensated; the capture itself was not, so the caller must route this to
// the manual refund workflow.
type StockConflictError struct {
	ProductID uint
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient quantity for item %d", e.ProductID)
}

type CheckoutRequest struct {
	Nonce string     `json:"nonce"`
	Cart  []CartLine `json:"cart"`
}

type CheckoutResult struct {
	TransactionID string
	Amount        string
}

// Service orchestrates a checkout: validate the cart, charge the gateway,
// decrement stock line by line with compensation on failure, then append the
// order to the ledger.
type Service struct {
	db      *gorm.DB
	gateway Gateway
	metrics *metrics.CheckoutMetrics
}

func NewService(db *gorm.DB, gateway Gateway, m *metrics.CheckoutMetrics) *Service {
	return &Service{db: db, gateway: gateway, metrics: m}
}

// CartAmount sums the cart in integer cents and renders the total as a
// decimal string ("25.50"). Lines with a non-positive quantity or unusable
// price are skipped rather than failing the whole computation.
//
// The price is the client-supplied figure from the cart payload, not the
// catalog price. That trust assumption is inherited from the original API
// contract; see DESIGN.md before "fixing" it.
func CartAmount(cart []CartLine) string {
	hundred := decimal.NewFromInt(100)
	totalCents := decimal.Zero
	for _, line := range cart {
		qty := line.Qty()
		if qty <= 0 || line.Price < 0 || math.IsNaN(line.Price) || math.IsInf(line.Price, 0) {
			continue
		}
		cents := decimal.NewFromFloat(line.Price).Mul(hundred).Round(0)
		totalCents = totalCents.Add(cents.Mul(decimal.NewFromInt(int64(qty))))
	}
	return totalCents.Div(hundred).StringFixed(2)
}

// Checkout runs the full payment flow for one submitted cart and reports the
// outcome to the metrics registry.
func (s *Service) Checkout(ctx context.Context, buyerID string, req CheckoutRequest) (*CheckoutResult, error) {
	start := time.Now()
	result, err := s.checkout(ctx, buyerID, req)
	s.metrics.Observe(outcomeLabel(err), time.Since(start))
	return result, err
}

func (s *Service) checkout(ctx context.Context, buyerID string, req CheckoutRequest) (*CheckoutResult, error) {
	if req.Nonce == "" || len(req.Cart) == 0 {
		return nil, &ValidationError{Reason: "missing payment nonce or empty cart"}
	}
	if err := validateCart(req.Cart); err != nil {
		return nil, err
	}
	if buyerID == "" {
		return nil, &ValidationError{Reason: "missing buyer identity"}
	}

	amount := CartAmount(req.Cart)

	sale, err := s.gateway.Sale(ctx, SaleRequest{
		Amount:              amount,
		PaymentMethodNonce:  req.Nonce,
		SubmitForSettlement: true,
	})
	if err != nil {
		return nil, &PaymentError{Err: err}
	}
	if !sale.Success {
		return nil, &DeclinedError{Message: sale.Message}
	}

	// Payment is captured. From here every failure must walk back the stock
	// writes already made; the capture itself stays captured.
	if err := RunSteps(ctx, s.fulfilmentSteps(buyerID, amount, sale, req.Cart)); err != nil {
		return nil, err
	}

	return &CheckoutResult{TransactionID: sale.TransactionID, Amount: amount}, nil
}

// fulfilmentSteps builds one conditional-decrement step per cart line,
// in cart order, followed by the order append. The order append has no
// compensation of its own: if it fails, the decrement steps restore stock.
func (s *Service) fulfilmentSteps(buyerID, amount string, sale *SaleResult, cart []CartLine) []Step {
	steps := make([]Step, 0, len(cart)+1)
	for _, line := range cart {
		line := line
		qty := line.Qty()
		steps = append(steps, Step{
			Name: fmt.Sprintf("decrement-product-%d", line.ProductID),
			Apply: func(ctx context.Context) error {
				ok, err := models.DecrementStock(s.db.WithContext(ctx), line.ProductID, qty)
				if err != nil {
					return err
				}
				if !ok {
					return &StockConflictError{ProductID: line.ProductID, Requested: qty}
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return models.RestoreStock(s.db.WithContext(ctx), line.ProductID, qty)
			},
		})
	}

	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Qty(),
		})
	}
	steps = append(steps, Step{
		Name: "create-order",
		Apply: func(ctx context.Context) error {
			order := models.Order{
				OrderRef: time.Now().Format("20060102150405") + "-" + uuid.NewString(),
				BuyerID:  buyerID,
				Products: items,
				Payment: models.PaymentResult{
					Success:       true,
					TransactionID: sale.TransactionID,
					Amount:        amount,
				},
				Status: models.OrderStatusNotProcessed,
			}
			return models.CreateOrder(s.db.WithContext(ctx), &order)
		},
	})
	return steps
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case nil:
		return "success"
	case *ValidationError:
		return "invalid"
	case *DeclinedError:
		return "declined"
	case *PaymentError:
		return "payment_error"
	case *StockConflictError:
		return "stock_conflict"
	default:
		return "error"
	}
}
