package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

type restaurantFinder interface {
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type productFinder interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service handles customer ratings of restaurants, couriers and products.
type Service interface {
	CreateRestaurantReview(ctx context.Context, actor orders.Principal, restaurantID uuid.UUID, req CreateRequest) (*models.RestaurantReview, error)
	ListRestaurantReviews(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantReview, error)
	CreateCourierReview(ctx context.Context, actor orders.Principal, courierID uuid.UUID, req CreateRequest) (*models.CourierReview, error)
	ListCourierReviews(ctx context.Context, courierID uuid.UUID) ([]models.CourierReview, error)
	CreateProductReview(ctx context.Context, actor orders.Principal, productID uuid.UUID, req CreateRequest) (*models.ProductReview, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
}

type service struct {
	repo        *Repository
	restaurants restaurantFinder
	products    productFinder
	users       userFinder
}

// ServiceParams bundles the dependencies required to build the reviews service.
type ServiceParams struct {
	Repo        *Repository
	Restaurants restaurantFinder
	Products    productFinder
	Users       userFinder
}

// NewService constructs the reviews service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reviews repository is required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurant finder is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder is required")
	}
	return &service{
		repo:        params.Repo,
		restaurants: params.Restaurants,
		products:    params.Products,
		users:       params.Users,
	}, nil
}

func (s *service) CreateRestaurantReview(ctx context.Context, actor orders.Principal, restaurantID uuid.UUID, req CreateRequest) (*models.RestaurantReview, error) {
	if err := validateAuthor(actor, req); err != nil {
		return nil, err
	}
	if _, err := s.restaurants.FindRestaurantByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find restaurant")
	}

	review := &models.RestaurantReview{
		RestaurantID: restaurantID,
		UserID:       actor.UserID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	created, err := s.repo.CreateRestaurantReview(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant review")
	}
	return created, nil
}

func (s *service) ListRestaurantReviews(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantReview, error) {
	list, err := s.repo.ListRestaurantReviews(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list restaurant reviews")
	}
	return list, nil
}

func (s *service) CreateCourierReview(ctx context.Context, actor orders.Principal, courierID uuid.UUID, req CreateRequest) (*models.CourierReview, error) {
	if err := validateAuthor(actor, req); err != nil {
		return nil, err
	}
	courier, err := s.users.FindByID(ctx, courierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "courier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find courier")
	}
	if courier.Role != enums.RoleCourier {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "courier not found")
	}

	review := &models.CourierReview{
		CourierID: courierID,
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	created, err := s.repo.CreateCourierReview(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create courier review")
	}
	return created, nil
}

func (s *service) ListCourierReviews(ctx context.Context, courierID uuid.UUID) ([]models.CourierReview, error) {
	list, err := s.repo.ListCourierReviews(ctx, courierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list courier reviews")
	}
	return list, nil
}

func (s *service) CreateProductReview(ctx context.Context, actor orders.Principal, productID uuid.UUID, req CreateRequest) (*models.ProductReview, error) {
	if err := validateAuthor(actor, req); err != nil {
		return nil, err
	}
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}

	review := &models.ProductReview{
		ProductID: productID,
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	created, err := s.repo.CreateProductReview(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product review")
	}
	return created, nil
}

func (s *service) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	list, err := s.repo.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list product reviews")
	}
	return list, nil
}

func validateAuthor(actor orders.Principal, req CreateRequest) error {
	if actor.Role != enums.RoleCustomer {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only customers can leave reviews")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}
