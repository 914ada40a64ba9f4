package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is owned by a user with the restaurante role.
type Restaurant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	CNPJ      string    `gorm:"column:cnpj;uniqueIndex;not null"`
	Address   string    `gorm:"column:address"`
	Open      bool      `gorm:"column:open;not null;default:true"`
	Products  []Product `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
