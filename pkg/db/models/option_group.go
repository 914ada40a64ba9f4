package models

import "github.com/google/uuid"

// OptionGroup is a customization axis on a product (e.g. "size").
// Cardinality invariants: if !AllowsMultiple at most one of its options
// may be chosen per cart line; if Required at least one must be chosen.
type OptionGroup struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	Required       bool      `gorm:"column:required;not null;default:false"`
	AllowsMultiple bool      `gorm:"column:allows_multiple;not null;default:false"`
	Options        []Option  `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
