package deliveries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ordersvc "github.com/happyfood/happyfood-backend/internal/orders"
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

type deliveriesFixture struct {
	db   *gorm.DB
	svc  Service
	repo *Repository

	owner      uuid.UUID
	restaurant uuid.UUID
	customer   uuid.UUID
	courier    uuid.UUID
	order      *models.Order
}

func newDeliveriesFixture(t *testing.T) *deliveriesFixture {
	t.Helper()
	db := dbtest.New(t)
	repo := NewRepository(db)

	owner := uuid.New()
	restaurantID := uuid.New()
	restaurants := &stubRestaurants{byID: map[uuid.UUID]*models.Restaurant{
		restaurantID: {ID: restaurantID, OwnerID: owner, Name: "Cantina", CNPJ: "11222333000144"},
	}}

	customer := uuid.New()
	order := &models.Order{
		UserID:          customer,
		RestaurantID:    restaurantID,
		OrderNumber:     1,
		ReferenceDate:   "2025-03-01",
		Status:          enums.OrderStatusConfirmed,
		DeliveryAddress: "Rua A, 1",
		OriginAddress:   "Rua B, 2",
	}
	require.NoError(t, db.Create(order).Error)

	svc, err := NewService(ServiceParams{
		Repo:        repo,
		Orders:      ordersvc.NewRepository(db),
		Restaurants: restaurants,
		Now:         func() time.Time { return time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	return &deliveriesFixture{
		db:         db,
		svc:        svc,
		repo:       repo,
		owner:      owner,
		restaurant: restaurantID,
		customer:   customer,
		courier:    uuid.New(),
		order:      order,
	}
}

func (f *deliveriesFixture) dispatch(t *testing.T) *models.Delivery {
	t.Helper()
	delivery, err := f.svc.Create(context.Background(),
		ordersvc.Principal{UserID: f.owner, Role: enums.RoleRestaurant},
		f.order.ID, CreateRequest{CourierID: &f.courier})
	require.NoError(t, err)
	return delivery
}

func TestCreateDeliveryByRestaurantOwner(t *testing.T) {
	f := newDeliveriesFixture(t)

	delivery := f.dispatch(t)
	require.Equal(t, enums.DeliveryStatusWaiting, delivery.Status)
	require.NotNil(t, delivery.CourierID)
	require.Equal(t, f.courier, *delivery.CourierID)
	require.Nil(t, delivery.StartedAt)
}

func TestCreateDeliveryBySupportWithoutCourier(t *testing.T) {
	f := newDeliveriesFixture(t)

	delivery, err := f.svc.Create(context.Background(),
		ordersvc.Principal{UserID: uuid.New(), Role: enums.RoleSupport},
		f.order.ID, CreateRequest{})
	require.NoError(t, err)
	require.Nil(t, delivery.CourierID)

	courierID, err := f.repo.FindCourierForOrder(context.Background(), f.order.ID)
	require.NoError(t, err)
	require.Nil(t, courierID)
}

func TestCreateDeliveryForbiddenForStrangers(t *testing.T) {
	f := newDeliveriesFixture(t)

	_, err := f.svc.Create(context.Background(),
		ordersvc.Principal{UserID: uuid.New(), Role: enums.RoleRestaurant},
		f.order.ID, CreateRequest{})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestCreateDeliveryIsOnePerOrder(t *testing.T) {
	f := newDeliveriesFixture(t)
	f.dispatch(t)

	_, err := f.svc.Create(context.Background(),
		ordersvc.Principal{UserID: f.owner, Role: enums.RoleRestaurant},
		f.order.ID, CreateRequest{})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestSetStatusByAssignedCourierStampsTimes(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)
	ctx := context.Background()
	courier := ordersvc.Principal{UserID: f.courier, Role: enums.RoleCourier}

	updated, err := f.svc.SetStatus(ctx, courier, delivery.ID, SetStatusRequest{Status: "retirado"})
	require.NoError(t, err)
	require.Equal(t, enums.DeliveryStatusPickedUp, updated.Status)
	require.NotNil(t, updated.StartedAt)
	require.Nil(t, updated.FinishedAt)

	updated, err = f.svc.SetStatus(ctx, courier, delivery.ID, SetStatusRequest{Status: "entregue"})
	require.NoError(t, err)
	require.Equal(t, enums.DeliveryStatusDelivered, updated.Status)
	require.NotNil(t, updated.FinishedAt)
}

func TestSetStatusForbiddenForOtherCouriers(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)

	_, err := f.svc.SetStatus(context.Background(),
		ordersvc.Principal{UserID: uuid.New(), Role: enums.RoleCourier},
		delivery.ID, SetStatusRequest{Status: "retirado"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)

	_, err := f.svc.SetStatus(context.Background(),
		ordersvc.Principal{UserID: f.courier, Role: enums.RoleCourier},
		delivery.ID, SetStatusRequest{Status: "lost"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestPingsAppendInOrder(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)
	ctx := context.Background()
	courier := ordersvc.Principal{UserID: f.courier, Role: enums.RoleCourier}

	_, err := f.svc.AddPing(ctx, courier, delivery.ID, PingRequest{
		Latitude:  decimal.RequireFromString("-23.561414"),
		Longitude: decimal.RequireFromString("-46.655881"),
	})
	require.NoError(t, err)
	_, err = f.svc.AddPing(ctx, courier, delivery.ID, PingRequest{
		Latitude:  decimal.RequireFromString("-23.558702"),
		Longitude: decimal.RequireFromString("-46.662345"),
	})
	require.NoError(t, err)

	loaded, err := f.svc.Get(ctx, courier, delivery.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Pings, 2)
	require.True(t, loaded.Pings[0].Latitude.Equal(decimal.RequireFromString("-23.561414")))
}

func TestPingForbiddenForUnassignedActors(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)
	ping := PingRequest{
		Latitude:  decimal.RequireFromString("-23.5"),
		Longitude: decimal.RequireFromString("-46.6"),
	}

	for _, actor := range []ordersvc.Principal{
		{UserID: uuid.New(), Role: enums.RoleCourier},
		{UserID: f.customer, Role: enums.RoleCustomer},
		{UserID: f.owner, Role: enums.RoleRestaurant},
	} {
		_, err := f.svc.AddPing(context.Background(), actor, delivery.ID, ping)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
	}
}

func TestGetDeliveryVisibility(t *testing.T) {
	f := newDeliveriesFixture(t)
	delivery := f.dispatch(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		actor   ordersvc.Principal
		visible bool
	}{
		{"customer", ordersvc.Principal{UserID: f.customer, Role: enums.RoleCustomer}, true},
		{"restaurant owner", ordersvc.Principal{UserID: f.owner, Role: enums.RoleRestaurant}, true},
		{"assigned courier", ordersvc.Principal{UserID: f.courier, Role: enums.RoleCourier}, true},
		{"support", ordersvc.Principal{UserID: uuid.New(), Role: enums.RoleSupport}, true},
		{"stranger", ordersvc.Principal{UserID: uuid.New(), Role: enums.RoleCustomer}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loaded, err := f.svc.Get(ctx, tc.actor, delivery.ID)
			if tc.visible {
				require.NoError(t, err)
				require.Equal(t, delivery.ID, loaded.ID)
				return
			}
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
		})
	}
}
