package checkout

import (
	"github.com/google/uuid"
)

// Request carries the checkout inputs: the cart being converted and the
// delivery address picked from the customer's address book.
type Request struct {
	CartID    uuid.UUID `json:"cart_id" validate:"required"`
	AddressID uuid.UUID `json:"address_id" validate:"required"`
}
