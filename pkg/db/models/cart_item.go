package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart: a product, a quantity, a free-text
// note and the set of chosen options.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Note      *string   `gorm:"column:note"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Options   []Option  `gorm:"many2many:cart_item_options;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// UnitPrice is the live price of the line: product base price plus the
// chosen option deltas. Requires Product and Options to be loaded.
func (i CartItem) UnitPrice() decimal.Decimal {
	price := decimal.Zero
	if i.Product != nil {
		price = i.Product.Price
	}
	for _, opt := range i.Options {
		price = price.Add(opt.PriceDelta)
	}
	return price
}

// Subtotal is UnitPrice multiplied by the quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
