package enums

import "fmt"

// OrderStatus tracks the operator-driven lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pendente"
	OrderStatusConfirmed      OrderStatus = "confirmado"
	OrderStatusPreparing      OrderStatus = "em_preparo"
	OrderStatusOutForDelivery OrderStatus = "a_caminho"
	OrderStatusDelivered      OrderStatus = "entregue"
	OrderStatusCanceled       OrderStatus = "cancelado"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCanceled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
