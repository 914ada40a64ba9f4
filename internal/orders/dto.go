package orders

import (
	"github.com/google/uuid"

	"github.com/happyfood/happyfood-backend/pkg/enums"
)

// Principal is the authenticated actor performing an order operation.
type Principal struct {
	UserID uuid.UUID
	Role   enums.Role
}

// SetStatusRequest carries the requested order status transition.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListFilters narrows the scoped order listings.
type ListFilters struct {
	Status        *enums.OrderStatus
	ReferenceDate *string
}
