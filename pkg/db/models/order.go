package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/happyfood/happyfood-backend/pkg/enums"
)

// Order is the immutable record of a completed checkout. Only Status
// and Total may change after creation. The (restaurant, number, date)
// triple is unique; the index is the integrity backstop behind the
// sequencer's serializing lock.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	RestaurantID    uuid.UUID         `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:uq_orders_restaurant_number_date"`
	OrderNumber     int               `gorm:"column:order_number;not null;uniqueIndex:uq_orders_restaurant_number_date"`
	ReferenceDate   string            `gorm:"column:reference_date;type:text;not null;uniqueIndex:uq_orders_restaurant_number_date"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pendente'"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	DeliveryAddress string            `gorm:"column:delivery_address;not null"`
	OriginAddress   string            `gorm:"column:origin_address;not null"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// FormattedNumber renders the daily sequence number as shown to
// restaurant staff, zero-padded to the sequence width.
func (o Order) FormattedNumber() string {
	return fmt.Sprintf("%05d", o.OrderNumber)
}
