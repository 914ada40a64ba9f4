package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

type restaurantFinder interface {
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type courierAssignmentFinder interface {
	FindCourierForOrder(ctx context.Context, orderID uuid.UUID) (*uuid.UUID, error)
}

// Service exposes order reads and the operator status flow.
type Service interface {
	Get(ctx context.Context, actor Principal, orderID uuid.UUID) (*models.Order, error)
	ListOwn(ctx context.Context, actor Principal, filters ListFilters) ([]models.Order, error)
	ListForRestaurant(ctx context.Context, actor Principal, restaurantID uuid.UUID, filters ListFilters) ([]models.Order, error)
	SetStatus(ctx context.Context, actor Principal, orderID uuid.UUID, req SetStatusRequest) (*models.Order, error)
}

type service struct {
	repo        Repository
	restaurants restaurantFinder
	couriers    courierAssignmentFinder
}

// ServiceParams bundles the dependencies required to build the orders service.
type ServiceParams struct {
	Repo        Repository
	Restaurants restaurantFinder
	Couriers    courierAssignmentFinder
}

// NewService constructs the orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurant finder is required")
	}
	return &service{
		repo:        params.Repo,
		restaurants: params.Restaurants,
		couriers:    params.Couriers,
	}, nil
}

func (s *service) Get(ctx context.Context, actor Principal, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListOwn(ctx context.Context, actor Principal, filters ListFilters) ([]models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, actor.UserID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return orders, nil
}

func (s *service) ListForRestaurant(ctx context.Context, actor Principal, restaurantID uuid.UUID, filters ListFilters) ([]models.Order, error) {
	if actor.Role != enums.RoleSupport {
		restaurant, err := s.restaurants.FindRestaurantByID(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find restaurant")
		}
		if restaurant.OwnerID != actor.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the restaurant owner")
		}
	}
	orders, err := s.repo.ListByRestaurant(ctx, restaurantID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list restaurant orders")
	}
	return orders, nil
}

func (s *service) SetStatus(ctx context.Context, actor Principal, orderID uuid.UUID, req SetStatusRequest) (*models.Order, error) {
	status, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": req.Status})
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role != enums.RoleSupport {
		restaurant, err := s.restaurants.FindRestaurantByID(ctx, order.RestaurantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find restaurant")
		}
		if restaurant.OwnerID != actor.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to update this order")
		}
	}

	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is %s and cannot change status", order.Status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	return s.findOrder(ctx, orderID)
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	return order, nil
}

func (s *service) authorizeRead(ctx context.Context, actor Principal, order *models.Order) error {
	switch {
	case actor.Role == enums.RoleSupport:
		return nil
	case order.UserID == actor.UserID:
		return nil
	}

	if actor.Role == enums.RoleRestaurant {
		restaurant, err := s.restaurants.FindRestaurantByID(ctx, order.RestaurantID)
		if err == nil && restaurant.OwnerID == actor.UserID {
			return nil
		}
	}

	if actor.Role == enums.RoleCourier && s.couriers != nil {
		courierID, err := s.couriers.FindCourierForOrder(ctx, order.ID)
		if err == nil && courierID != nil && *courierID == actor.UserID {
			return nil
		}
	}

	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}
