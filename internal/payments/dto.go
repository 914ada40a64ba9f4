package payments

// CreateRequest registers the payment intent for an order.
type CreateRequest struct {
	Method string `json:"method" validate:"required"`
}
