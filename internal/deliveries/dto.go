package deliveries

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequest opens the delivery leg for an order. The courier can be
// assigned at creation time or stay unset until dispatch.
type CreateRequest struct {
	CourierID *uuid.UUID `json:"courier_id,omitempty"`
}

// SetStatusRequest carries the courier-driven status transition.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PingRequest is one GPS sample from the assigned courier.
type PingRequest struct {
	Latitude  decimal.Decimal `json:"latitude" validate:"required"`
	Longitude decimal.Decimal `json:"longitude" validate:"required"`
}
