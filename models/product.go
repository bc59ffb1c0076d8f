package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"_id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Quantity    int            `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	CategoryID  uint           `gorm:"index" json:"category"`
	Category    Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Shipping    bool           `json:"shipping"`
	Photo       []byte         `gorm:"type:bytea" json:"-"`
	PhotoType   string         `json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// DecrementStock subtracts qty from the product's stock only if enough stock
// remains. Returns false when the conditional update matched no row (product
// missing or insufficient stock) — the caller must treat that as a lost race.
func DecrementStock(db *gorm.DB, productID uint, qty int) (bool, error) {
	res := db.Model(&Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RestoreStock adds qty back to the product's stock. Used as the compensating
// write when a later step of the same checkout fails.
func RestoreStock(db *gorm.DB, productID uint, qty int) error {
	return db.Model(&Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// ProductStock returns the current stock for a product. A soft-deleted or
// unknown product reports found=false.
func ProductStock(db *gorm.DB, productID uint) (stock int, found bool, err error) {
	var product Product
	if err := db.Select("quantity").First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return product.Quantity, true, nil
}
