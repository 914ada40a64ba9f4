package addresses

// CreateAddressRequest carries the address book fields.
type CreateAddressRequest struct {
	Street     string  `json:"street" validate:"required,min=2,max=255"`
	Number     string  `json:"number" validate:"required,max=20"`
	Complement *string `json:"complement,omitempty" validate:"omitempty,max=255"`
	District   string  `json:"district" validate:"required,max=100"`
	City       string  `json:"city" validate:"required,max=100"`
	State      string  `json:"state" validate:"required,len=2"`
	PostalCode string  `json:"postal_code" validate:"required,min=8,max=9"`
}
