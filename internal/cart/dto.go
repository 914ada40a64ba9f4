package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a line to the caller's cart at one restaurant.
type AddItemRequest struct {
	RestaurantID uuid.UUID   `json:"restaurant_id" validate:"required"`
	ProductID    uuid.UUID   `json:"product_id" validate:"required"`
	Quantity     int         `json:"quantity" validate:"required,gt=0"`
	Note         *string     `json:"note,omitempty" validate:"omitempty,max=500"`
	OptionIDs    []uuid.UUID `json:"option_ids"`
}

// UpdateItemRequest mutates an existing cart line. Options, when present,
// replace the chosen set and are revalidated.
type UpdateItemRequest struct {
	Quantity  *int         `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Note      *string      `json:"note,omitempty" validate:"omitempty,max=500"`
	OptionIDs *[]uuid.UUID `json:"option_ids,omitempty"`
}

// LineView is one cart line with its computed prices.
type LineView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Note        *string         `json:"note,omitempty"`
	Options     []OptionView    `json:"options"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OptionView is one chosen option on a line.
type OptionView struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// View is the cart as returned to clients: lines plus the running total.
type View struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	Lines        []LineView      `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
