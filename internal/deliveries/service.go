package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

type orderFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type restaurantFinder interface {
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// Service drives the courier leg of an order: creation by the operator
// side, status transitions and GPS pings by the assigned courier.
type Service interface {
	Create(ctx context.Context, actor orders.Principal, orderID uuid.UUID, req CreateRequest) (*models.Delivery, error)
	Get(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID) (*models.Delivery, error)
	SetStatus(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID, req SetStatusRequest) (*models.Delivery, error)
	AddPing(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID, req PingRequest) (*models.DeliveryPing, error)
}

type service struct {
	repo        *Repository
	orders      orderFinder
	restaurants restaurantFinder
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build the deliveries service.
type ServiceParams struct {
	Repo        *Repository
	Orders      orderFinder
	Restaurants restaurantFinder
	Now         func() time.Time
}

// NewService constructs the deliveries service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("deliveries repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order finder is required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurant finder is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		orders:      params.Orders,
		restaurants: params.Restaurants,
		now:         now,
	}, nil
}

func (s *service) Create(ctx context.Context, actor orders.Principal, orderID uuid.UUID, req CreateRequest) (*models.Delivery, error) {
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
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to dispatch this order")
		}
	}

	delivery := &models.Delivery{
		OrderID:   order.ID,
		CourierID: req.CourierID,
		Status:    enums.DeliveryStatusWaiting,
	}
	created, err := s.repo.Create(ctx, delivery)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "delivery already created for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create delivery")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.findDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *service) SetStatus(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID, req SetStatusRequest) (*models.Delivery, error) {
	status, err := enums.ParseDeliveryStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery status").
			WithDetails(map[string]string{"status": req.Status})
	}

	delivery, err := s.findDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAssignedCourier(actor, delivery); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": status}
	switch status {
	case enums.DeliveryStatusPickedUp:
		if delivery.StartedAt == nil {
			updates["started_at"] = s.now()
		}
	case enums.DeliveryStatusDelivered:
		if delivery.FinishedAt == nil {
			updates["finished_at"] = s.now()
		}
	}
	if err := s.repo.Update(ctx, deliveryID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update delivery status")
	}
	return s.findDelivery(ctx, deliveryID)
}

func (s *service) AddPing(ctx context.Context, actor orders.Principal, deliveryID uuid.UUID, req PingRequest) (*models.DeliveryPing, error) {
	delivery, err := s.findDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAssignedCourier(actor, delivery); err != nil {
		return nil, err
	}

	ping := &models.DeliveryPing{
		DeliveryID: delivery.ID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	created, err := s.repo.AddPing(ctx, ping)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record delivery ping")
	}
	return created, nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	return order, nil
}

func (s *service) findDelivery(ctx context.Context, deliveryID uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.repo.FindByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find delivery")
	}
	return delivery, nil
}

func (s *service) requireAssignedCourier(actor orders.Principal, delivery *models.Delivery) error {
	if actor.Role != enums.RoleCourier || delivery.CourierID == nil || *delivery.CourierID != actor.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not the assigned courier")
	}
	return nil
}

func (s *service) authorizeRead(ctx context.Context, actor orders.Principal, delivery *models.Delivery) error {
	if actor.Role == enums.RoleSupport {
		return nil
	}
	if delivery.CourierID != nil && *delivery.CourierID == actor.UserID {
		return nil
	}

	order, err := s.findOrder(ctx, delivery.OrderID)
	if err != nil {
		return err
	}
	if order.UserID == actor.UserID {
		return nil
	}
	if actor.Role == enums.RoleRestaurant {
		restaurant, err := s.restaurants.FindRestaurantByID(ctx, order.RestaurantID)
		if err == nil && restaurant.OwnerID == actor.UserID {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
}
