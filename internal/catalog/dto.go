package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRestaurantRequest carries the fields accepted when onboarding a restaurant.
type CreateRestaurantRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	CNPJ    string `json:"cnpj" validate:"required,min=14,max=18"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateRestaurantRequest carries the mutable restaurant fields.
type UpdateRestaurantRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Open    *bool   `json:"open,omitempty"`
}

// CreateCategoryRequest names a new product category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// CreateProductRequest carries the fields accepted when adding a menu entry.
type CreateProductRequest struct {
	RestaurantID uuid.UUID       `json:"restaurant_id" validate:"required"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Name         string          `json:"name" validate:"required,min=2,max=255"`
	Description  *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	ImageURL     *string         `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateProductRequest carries the mutable product fields.
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	Available   *bool            `json:"available,omitempty"`
}

// CreateOptionGroupRequest declares a customization axis on a product.
type CreateOptionGroupRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Required       bool   `json:"required"`
	AllowsMultiple bool   `json:"allows_multiple"`
}

// CreateOptionRequest adds a choice to an option group.
type CreateOptionRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=100"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}
