package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/internal/cart"
	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
	"github.com/happyfood/happyfood-backend/pkg/types"
)

// originFallback is frozen into orders when the restaurant has no
// address on file.
const originFallback = "address not registered"

const emptyCartMessage = "cart contains no items"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type addressFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
}

type restaurantFinder interface {
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// Service converts a cart into an immutable, sequentially numbered order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, req Request) (*models.Order, error)
}

type service struct {
	tx          txRunner
	carts       cart.Repository
	orders      orders.Repository
	sequencer   *orders.Sequencer
	addresses   addressFinder
	restaurants restaurantFinder
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build the checkout service.
type ServiceParams struct {
	Tx          txRunner
	Carts       cart.Repository
	Orders      orders.Repository
	Sequencer   *orders.Sequencer
	Addresses   addressFinder
	Restaurants restaurantFinder
	Now         func() time.Time
}

// NewService constructs the checkout orchestrator.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Sequencer == nil {
		return nil, fmt.Errorf("sequencer is required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address finder is required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurant finder is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:          params.Tx,
		carts:       params.Carts,
		orders:      params.Orders,
		sequencer:   params.Sequencer,
		addresses:   params.Addresses,
		restaurants: params.Restaurants,
		now:         now,
	}, nil
}

// Checkout runs the whole conversion in one transaction. A duplicate
// order number slipping past the sequence lock trips the unique index;
// that single case is retried once with a fresh transaction.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, req Request) (*models.Order, error) {
	order, err := s.attempt(ctx, userID, req)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		order, err = s.attempt(ctx, userID, req)
		if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number contention")
		}
	}
	return order, err
}

func (s *service) attempt(ctx context.Context, userID uuid.UUID, req Request) (*models.Order, error) {
	var order *models.Order

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		loaded, err := carts.FindByID(ctx, req.CartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if loaded.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		if len(loaded.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, emptyCartMessage)
		}

		restaurant, err := s.restaurants.FindRestaurantByID(ctx, loaded.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "restaurant no longer exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
		}

		address, err := s.addresses.FindByID(ctx, req.AddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
		}
		if address.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}

		referenceDate := s.now().Format("2006-01-02")
		number, err := s.sequencer.Next(ctx, tx, restaurant.ID, referenceDate)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sequence order number")
		}

		items, total, err := snapshotLines(loaded.Items)
		if err != nil {
			return err
		}

		shell := &models.Order{
			UserID:          userID,
			RestaurantID:    restaurant.ID,
			OrderNumber:     number,
			ReferenceDate:   referenceDate,
			Status:          enums.OrderStatusPending,
			Total:           total,
			DeliveryAddress: address.Snapshot(),
			OriginAddress:   originSnapshot(restaurant),
		}
		if _, err := ordersRepo.Create(ctx, shell); err != nil {
			// raw duplicate errors bubble up so Checkout can retry
			return err
		}

		for i := range items {
			items[i].OrderID = shell.ID
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "snapshot order lines")
		}

		if err := carts.Clear(ctx, loaded.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		shell.Items = items
		order = shell
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// snapshotLines freezes every cart line: unit price is the live base
// price plus option deltas, and chosen options are denormalized into
// {name, price_delta} copies that later catalog edits cannot touch.
func snapshotLines(items []models.CartItem) ([]models.OrderItem, decimal.Decimal, error) {
	snapshots := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero

	for i := range items {
		item := &items[i]
		if item.Product == nil {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeStateConflict, "product no longer exists")
		}

		options := make(types.OptionSnapshots, 0, len(item.Options))
		for _, opt := range item.Options {
			options = append(options, types.OptionSnapshot{
				Name:       opt.Name,
				PriceDelta: opt.PriceDelta,
			})
		}

		productID := item.ProductID
		snapshot := models.OrderItem{
			ProductID: &productID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice(),
			Note:      item.Note,
			Options:   options,
		}
		snapshots = append(snapshots, snapshot)
		total = total.Add(snapshot.Subtotal())
	}

	return snapshots, total, nil
}

func originSnapshot(restaurant *models.Restaurant) string {
	if strings.TrimSpace(restaurant.Address) == "" {
		return originFallback
	}
	return restaurant.Address
}
