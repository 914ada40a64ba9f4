package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

// Service exposes catalog management plus the read surface used by carts.
type Service interface {
	CreateRestaurant(ctx context.Context, ownerID uuid.UUID, req CreateRestaurantRequest) (*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, onlyOpen bool) ([]models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, actorID, id uuid.UUID, req UpdateRestaurantRequest) (*models.Restaurant, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, actorID uuid.UUID, req CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]models.Product, error)
	UpdateProduct(ctx context.Context, actorID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, actorID, id uuid.UUID) error

	CreateOptionGroup(ctx context.Context, actorID, productID uuid.UUID, req CreateOptionGroupRequest) (*models.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, actorID, groupID uuid.UUID) error
	CreateOption(ctx context.Context, actorID, groupID uuid.UUID, req CreateOptionRequest) (*models.Option, error)
}

type service struct {
	repo Repository
}

// NewService constructs the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateRestaurant(ctx context.Context, ownerID uuid.UUID, req CreateRestaurantRequest) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(req.Name),
		CNPJ:    strings.TrimSpace(req.CNPJ),
		Address: strings.TrimSpace(req.Address),
		Open:    true,
	}
	created, err := s.repo.CreateRestaurant(ctx, restaurant)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cnpj already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant")
	}
	return created, nil
}

func (s *service) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindRestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find restaurant")
	}
	return restaurant, nil
}

func (s *service) ListRestaurants(ctx context.Context, onlyOpen bool) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx, onlyOpen)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list restaurants")
	}
	return restaurants, nil
}

func (s *service) UpdateRestaurant(ctx context.Context, actorID, id uuid.UUID, req UpdateRestaurantRequest) (*models.Restaurant, error) {
	restaurant, err := s.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the restaurant owner")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Open != nil {
		updates["open"] = *req.Open
	}
	if len(updates) == 0 {
		return restaurant, nil
	}
	if err := s.repo.UpdateRestaurant(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update restaurant")
	}
	return s.GetRestaurant(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(req.Name)}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return created, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return categories, nil
}

func (s *service) CreateProduct(ctx context.Context, actorID uuid.UUID, req CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, req.RestaurantID); err != nil {
		return nil, err
	}

	product := &models.Product{
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Available:    true,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]models.Product, error) {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	products, err := s.repo.ListProductsByRestaurant(ctx, restaurantID, onlyAvailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, actorID, id uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, product.RestaurantID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if len(updates) == 0 {
		return product, nil
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, product.RestaurantID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) CreateOptionGroup(ctx context.Context, actorID, productID uuid.UUID, req CreateOptionGroupRequest) (*models.OptionGroup, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, product.RestaurantID); err != nil {
		return nil, err
	}

	group := &models.OptionGroup{
		ProductID:      productID,
		Name:           strings.TrimSpace(req.Name),
		Required:       req.Required,
		AllowsMultiple: req.AllowsMultiple,
	}
	created, err := s.repo.CreateOptionGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create option group")
	}
	return created, nil
}

func (s *service) DeleteOptionGroup(ctx context.Context, actorID, groupID uuid.UUID) error {
	group, err := s.findOptionGroup(ctx, groupID)
	if err != nil {
		return err
	}
	product, err := s.GetProduct(ctx, group.ProductID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, product.RestaurantID); err != nil {
		return err
	}
	if err := s.repo.DeleteOptionGroup(ctx, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete option group")
	}
	return nil
}

func (s *service) CreateOption(ctx context.Context, actorID, groupID uuid.UUID, req CreateOptionRequest) (*models.Option, error) {
	if req.PriceDelta.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_delta must not be negative")
	}
	group, err := s.findOptionGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	product, err := s.GetProduct(ctx, group.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedRestaurant(ctx, actorID, product.RestaurantID); err != nil {
		return nil, err
	}

	option := &models.Option{
		GroupID:    groupID,
		Name:       strings.TrimSpace(req.Name),
		PriceDelta: req.PriceDelta,
	}
	created, err := s.repo.CreateOption(ctx, option)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create option")
	}
	return created, nil
}

func (s *service) findOptionGroup(ctx context.Context, groupID uuid.UUID) (*models.OptionGroup, error) {
	group, err := s.repo.FindOptionGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find option group")
	}
	return group, nil
}

func (s *service) requireOwnedRestaurant(ctx context.Context, actorID, restaurantID uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the restaurant owner")
	}
	return restaurant, nil
}
