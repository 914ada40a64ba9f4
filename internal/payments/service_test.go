package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/pkg/db/dbtest"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

type stubOrderReader struct {
	byID map[uuid.UUID]*models.Order
}

func (s *stubOrderReader) Get(ctx context.Context, actor orders.Principal, orderID uuid.UUID) (*models.Order, error) {
	order, ok := s.byID[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if actor.Role == enums.RoleSupport || order.UserID == actor.UserID {
		return order, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

type paymentsFixture struct {
	svc      Service
	customer uuid.UUID
	order    *models.Order
}

func newPaymentsFixture(t *testing.T) *paymentsFixture {
	t.Helper()
	db := dbtest.New(t)

	customer := uuid.New()
	order := &models.Order{
		UserID:          customer,
		RestaurantID:    uuid.New(),
		OrderNumber:     1,
		ReferenceDate:   "2025-03-01",
		Status:          enums.OrderStatusPending,
		Total:           decimal.RequireFromString("61.80"),
		DeliveryAddress: "Rua A, 1",
		OriginAddress:   "Rua B, 2",
	}
	require.NoError(t, db.Create(order).Error)

	reader := &stubOrderReader{byID: map[uuid.UUID]*models.Order{order.ID: order}}
	svc, err := NewService(NewRepository(db), reader)
	require.NoError(t, err)

	return &paymentsFixture{svc: svc, customer: customer, order: order}
}

func TestCreatePaymentCopiesOrderTotal(t *testing.T) {
	f := newPaymentsFixture(t)
	actor := orders.Principal{UserID: f.customer, Role: enums.RoleCustomer}

	payment, err := f.svc.Create(context.Background(), actor, f.order.ID, CreateRequest{Method: "pix"})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentMethodPix, payment.Method)
	require.Equal(t, enums.PaymentStatusPending, payment.Status)
	require.True(t, payment.Amount.Equal(f.order.Total))
}

func TestCreatePaymentIsOnePerOrder(t *testing.T) {
	f := newPaymentsFixture(t)
	ctx := context.Background()
	actor := orders.Principal{UserID: f.customer, Role: enums.RoleCustomer}

	_, err := f.svc.Create(ctx, actor, f.order.ID, CreateRequest{Method: "pix"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, actor, f.order.ID, CreateRequest{Method: "dinheiro"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestCreatePaymentRejectsUnknownMethod(t *testing.T) {
	f := newPaymentsFixture(t)
	actor := orders.Principal{UserID: f.customer, Role: enums.RoleCustomer}

	_, err := f.svc.Create(context.Background(), actor, f.order.ID, CreateRequest{Method: "cheque"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreatePaymentOnlyByOrderOwner(t *testing.T) {
	f := newPaymentsFixture(t)

	// support can see the order but cannot register its payment
	_, err := f.svc.Create(context.Background(), orders.Principal{UserID: uuid.New(), Role: enums.RoleSupport},
		f.order.ID, CreateRequest{Method: "pix"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	// strangers do not even see the order
	_, err = f.svc.Create(context.Background(), orders.Principal{UserID: uuid.New(), Role: enums.RoleCustomer},
		f.order.ID, CreateRequest{Method: "pix"})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestGetPayment(t *testing.T) {
	f := newPaymentsFixture(t)
	ctx := context.Background()
	actor := orders.Principal{UserID: f.customer, Role: enums.RoleCustomer}

	_, err := f.svc.Get(ctx, actor, f.order.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	created, err := f.svc.Create(ctx, actor, f.order.ID, CreateRequest{Method: "cartao_credito"})
	require.NoError(t, err)

	found, err := f.svc.Get(ctx, actor, f.order.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	support := orders.Principal{UserID: uuid.New(), Role: enums.RoleSupport}
	found, err = f.svc.Get(ctx, support, f.order.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
}
