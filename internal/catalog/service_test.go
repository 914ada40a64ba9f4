package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/happyfood/happyfood-backend/pkg/db/dbtest"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.New(t)))
	require.NoError(t, err)
	return svc
}

func TestCreateRestaurantAndDuplicateCNPJ(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRestaurant(ctx, owner, CreateRestaurantRequest{
		Name: "Cantina da Praça",
		CNPJ: "11222333000144",
	})
	require.NoError(t, err)
	require.Equal(t, owner, created.OwnerID)
	require.True(t, created.Open)

	_, err = svc.CreateRestaurant(ctx, uuid.New(), CreateRestaurantRequest{
		Name: "Outra",
		CNPJ: "11222333000144",
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestProductOwnershipEnforced(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	restaurant, err := svc.CreateRestaurant(ctx, owner, CreateRestaurantRequest{
		Name: "Cantina",
		CNPJ: "11222333000144",
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, stranger, CreateProductRequest{
		RestaurantID: restaurant.ID,
		Name:         "X-Burguer",
		Price:        decimal.RequireFromString("25.90"),
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	product, err := svc.CreateProduct(ctx, owner, CreateProductRequest{
		RestaurantID: restaurant.ID,
		Name:         "X-Burguer",
		Price:        decimal.RequireFromString("25.90"),
	})
	require.NoError(t, err)

	err = svc.DeleteProduct(ctx, stranger, product.ID)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestCreateOptionRejectsNegativeDelta(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	restaurant, err := svc.CreateRestaurant(ctx, owner, CreateRestaurantRequest{Name: "Cantina", CNPJ: "11222333000144"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, owner, CreateProductRequest{
		RestaurantID: restaurant.ID,
		Name:         "Açaí",
		Price:        decimal.RequireFromString("18.00"),
	})
	require.NoError(t, err)
	group, err := svc.CreateOptionGroup(ctx, owner, product.ID, CreateOptionGroupRequest{Name: "Adicionais", AllowsMultiple: true})
	require.NoError(t, err)

	_, err = svc.CreateOption(ctx, owner, group.ID, CreateOptionRequest{
		Name:       "Granola",
		PriceDelta: decimal.RequireFromString("-1.00"),
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestGetUnknownProductIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
