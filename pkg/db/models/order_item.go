package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/happyfood/happyfood-backend/pkg/types"
)

// OrderItem is the immutable snapshot of one cart line at checkout.
// UnitPrice freezes base price plus option deltas; Options carries the
// denormalized {name, price_delta} copies decoupled from live records.
type OrderItem struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID             `gorm:"column:order_id;type:uuid;not null"`
	ProductID *uuid.UUID            `gorm:"column:product_id;type:uuid"`
	Name      string                `gorm:"column:name;not null"`
	Quantity  int                   `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal       `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Note      *string               `gorm:"column:note"`
	Options   types.OptionSnapshots `gorm:"column:options;type:jsonb;serializer:json"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

// Subtotal is quantity times the frozen unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
