package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Option is a selectable choice inside an OptionGroup. Order snapshots
// copy Name and PriceDelta, so later edits never change past orders.
type Option struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID    uuid.UUID       `gorm:"column:group_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	PriceDelta decimal.Decimal `gorm:"column:price_delta;type:numeric(10,2);not null;default:0"`
}
