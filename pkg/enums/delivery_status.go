package enums

import "fmt"

// DeliveryStatus tracks the courier-side progress of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusWaiting   DeliveryStatus = "aguardando"
	DeliveryStatusPickedUp  DeliveryStatus = "retirado"
	DeliveryStatusEnRoute   DeliveryStatus = "em_rota"
	DeliveryStatusDelivered DeliveryStatus = "entregue"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusWaiting,
	DeliveryStatusPickedUp,
	DeliveryStatusEnRoute,
	DeliveryStatusDelivered,
}

// String implements fmt.Stringer.
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DeliveryStatus.
func (s DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts raw input into a DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
