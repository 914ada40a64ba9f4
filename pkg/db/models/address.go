package models

import (
	"strings"

	"github.com/google/uuid"
)

// Address belongs to a customer's address book.
type Address struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Street     string    `gorm:"column:street;not null"`
	Number     string    `gorm:"column:number;not null"`
	Complement *string   `gorm:"column:complement"`
	District   string    `gorm:"column:district;not null"`
	City       string    `gorm:"column:city;not null"`
	State      string    `gorm:"column:state;not null"`
	PostalCode string    `gorm:"column:postal_code;not null"`
}

// Snapshot renders the one-line textual representation frozen into
// orders at checkout time.
func (a Address) Snapshot() string {
	parts := []string{a.Street + ", " + a.Number}
	if a.Complement != nil && strings.TrimSpace(*a.Complement) != "" {
		parts = append(parts, *a.Complement)
	}
	parts = append(parts, a.District, a.City+" - "+a.State, a.PostalCode)
	return strings.Join(parts, ", ")
}
