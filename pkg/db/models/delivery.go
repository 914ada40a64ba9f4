package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/happyfood/happyfood-backend/pkg/enums"
)

// Delivery tracks the courier leg of one order.
type Delivery struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID            `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	CourierID  *uuid.UUID           `gorm:"column:courier_id;type:uuid"`
	Status     enums.DeliveryStatus `gorm:"column:status;type:text;not null;default:'aguardando'"`
	StartedAt  *time.Time           `gorm:"column:started_at"`
	FinishedAt *time.Time           `gorm:"column:finished_at"`
	Pings      []DeliveryPing       `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
