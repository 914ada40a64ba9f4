package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryPing is an append-only GPS sample from the assigned courier.
type DeliveryPing struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryID uuid.UUID       `gorm:"column:delivery_id;type:uuid;not null"`
	Latitude   decimal.Decimal `gorm:"column:latitude;type:numeric(9,6);not null"`
	Longitude  decimal.Decimal `gorm:"column:longitude;type:numeric(9,6);not null"`
	RecordedAt time.Time       `gorm:"column:recorded_at;autoCreateTime"`
}
