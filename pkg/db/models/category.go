package models

import "github.com/google/uuid"

// Category labels products across restaurants.
type Category struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null"`
}
