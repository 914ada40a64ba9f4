package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/dbtest"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

type stubRestaurants struct {
	byID map[uuid.UUID]*models.Restaurant
}

func (s *stubRestaurants) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCouriers struct {
	byOrder map[uuid.UUID]uuid.UUID
}

func (s *stubCouriers) FindCourierForOrder(ctx context.Context, orderID uuid.UUID) (*uuid.UUID, error) {
	if id, ok := s.byOrder[orderID]; ok {
		return &id, nil
	}
	return nil, nil
}

type ordersFixture struct {
	db          *gorm.DB
	svc         Service
	repo        Repository
	restaurants *stubRestaurants
	couriers    *stubCouriers

	owner      uuid.UUID
	restaurant uuid.UUID
	customer   uuid.UUID
	order      *models.Order
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()
	db := dbtest.New(t)
	repo := NewRepository(db)

	owner := uuid.New()
	restaurantID := uuid.New()
	restaurants := &stubRestaurants{byID: map[uuid.UUID]*models.Restaurant{
		restaurantID: {ID: restaurantID, OwnerID: owner, Name: "Cantina", CNPJ: "11222333000144"},
	}}
	couriers := &stubCouriers{byOrder: map[uuid.UUID]uuid.UUID{}}

	svc, err := NewService(ServiceParams{Repo: repo, Restaurants: restaurants, Couriers: couriers})
	require.NoError(t, err)

	customer := uuid.New()
	order := &models.Order{
		UserID:          customer,
		RestaurantID:    restaurantID,
		OrderNumber:     1,
		ReferenceDate:   "2025-03-01",
		Status:          enums.OrderStatusPending,
		DeliveryAddress: "Rua A, 1",
		OriginAddress:   "Rua B, 2",
	}
	require.NoError(t, db.Create(order).Error)

	return &ordersFixture{
		db:          db,
		svc:         svc,
		repo:        repo,
		restaurants: restaurants,
		couriers:    couriers,
		owner:       owner,
		restaurant:  restaurantID,
		customer:    customer,
		order:       order,
	}
}

func TestGetOrderVisibility(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	courier := uuid.New()
	f.couriers.byOrder[f.order.ID] = courier

	cases := []struct {
		name    string
		actor   Principal
		visible bool
	}{
		{"owner customer", Principal{UserID: f.customer, Role: enums.RoleCustomer}, true},
		{"other customer", Principal{UserID: uuid.New(), Role: enums.RoleCustomer}, false},
		{"restaurant owner", Principal{UserID: f.owner, Role: enums.RoleRestaurant}, true},
		{"other restaurant", Principal{UserID: uuid.New(), Role: enums.RoleRestaurant}, false},
		{"assigned courier", Principal{UserID: courier, Role: enums.RoleCourier}, true},
		{"other courier", Principal{UserID: uuid.New(), Role: enums.RoleCourier}, false},
		{"support", Principal{UserID: uuid.New(), Role: enums.RoleSupport}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := f.svc.Get(ctx, tc.actor, f.order.ID)
			if tc.visible {
				require.NoError(t, err)
				require.Equal(t, f.order.ID, order.ID)
				return
			}
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
		})
	}
}

func TestSetStatusByRestaurantOwner(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	order, err := f.svc.SetStatus(ctx, Principal{UserID: f.owner, Role: enums.RoleRestaurant}, f.order.ID,
		SetStatusRequest{Status: "confirmado"})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusConfirmed, order.Status)
}

func TestSetStatusForbiddenForStrangers(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, Principal{UserID: uuid.New(), Role: enums.RoleRestaurant}, f.order.ID,
		SetStatusRequest{Status: "confirmado"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.svc.SetStatus(context.Background(), Principal{UserID: f.owner, Role: enums.RoleRestaurant},
		f.order.ID, SetStatusRequest{Status: "shipped"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCanceledOrderIsTerminal(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	support := Principal{UserID: uuid.New(), Role: enums.RoleSupport}

	_, err := f.svc.SetStatus(ctx, support, f.order.ID, SetStatusRequest{Status: "cancelado"})
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, support, f.order.ID, SetStatusRequest{Status: "confirmado"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestListOwnIsScoped(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	other := &models.Order{
		UserID:          uuid.New(),
		RestaurantID:    f.restaurant,
		OrderNumber:     2,
		ReferenceDate:   "2025-03-01",
		Status:          enums.OrderStatusPending,
		DeliveryAddress: "Rua C, 3",
		OriginAddress:   "Rua B, 2",
	}
	require.NoError(t, f.db.Create(other).Error)

	mine, err := f.svc.ListOwn(ctx, Principal{UserID: f.customer, Role: enums.RoleCustomer}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, f.order.ID, mine[0].ID)
}

func TestFormattedNumberPadsToFive(t *testing.T) {
	order := models.Order{OrderNumber: 42}
	require.Equal(t, "00042", order.FormattedNumber())
}
