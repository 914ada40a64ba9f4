package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds the mutable pre-order lines for one (customer, restaurant)
// pair. The composite unique index enforces at most one open cart per
// pair; checkout clears the lines atomically.
type Cart struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_carts_user_restaurant"`
	RestaurantID uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:uq_carts_user_restaurant"`
	Items        []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
