package payments

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

type orderReader interface {
	Get(ctx context.Context, actor orders.Principal, orderID uuid.UUID) (*models.Order, error)
}

// Service registers and reads the payment attached to an order. Payments
// are status holders only; there is no gateway behind them.
type Service interface {
	Create(ctx context.Context, actor orders.Principal, orderID uuid.UUID, req CreateRequest) (*models.Payment, error)
	Get(ctx context.Context, actor orders.Principal, orderID uuid.UUID) (*models.Payment, error)
}

type service struct {
	repo   *Repository
	orders orderReader
}

// NewService constructs the payments service.
func NewService(repo *Repository, ordersSvc orderReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository is required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("order reader is required")
	}
	return &service{repo: repo, orders: ordersSvc}, nil
}

func (s *service) Create(ctx context.Context, actor orders.Principal, orderID uuid.UUID, req CreateRequest) (*models.Payment, error) {
	method, err := enums.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
			WithDetails(map[string]string{"method": req.Method})
	}

	order, err := s.orders.Get(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the order owner can register a payment")
	}

	payment := &models.Payment{
		OrderID: order.ID,
		Method:  method,
		// amount is copied from the order total, never recomputed
		Amount: order.Total,
		Status: enums.PaymentStatusPending,
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment already registered for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, actor orders.Principal, orderID uuid.UUID) (*models.Payment, error) {
	if _, err := s.orders.Get(ctx, actor, orderID); err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find payment")
	}
	return payment, nil
}
