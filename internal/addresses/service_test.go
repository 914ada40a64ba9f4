package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/happyfood/happyfood-backend/pkg/db/dbtest"
	pkgerrors "github.com/happyfood/happyfood-backend/pkg/errors"
)

func TestAddressLifecycle(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.New(t)))
	require.NoError(t, err)
	ctx := context.Background()
	user := uuid.New()

	created, err := svc.Create(ctx, user, CreateAddressRequest{
		Street:     "Rua das Flores",
		Number:     "10",
		District:   "Centro",
		City:       "São Paulo",
		State:      "sp",
		PostalCode: "01001-000",
	})
	require.NoError(t, err)
	require.Equal(t, "SP", created.State)

	list, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, user, created.ID))

	list, err = svc.List(ctx, user)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAddressVisibilityScopedToOwner(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.New(t)))
	require.NoError(t, err)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	created, err := svc.Create(ctx, owner, CreateAddressRequest{
		Street:     "Rua das Flores",
		Number:     "10",
		District:   "Centro",
		City:       "São Paulo",
		State:      "SP",
		PostalCode: "01001-000",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, created.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	err = svc.Delete(ctx, other, created.ID)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestAddressSnapshotSkipsEmptyComplement(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.New(t)))
	require.NoError(t, err)
	ctx := context.Background()
	user := uuid.New()

	blank := "  "
	created, err := svc.Create(ctx, user, CreateAddressRequest{
		Street:     "Av. Paulista",
		Number:     "1578",
		Complement: &blank,
		District:   "Bela Vista",
		City:       "São Paulo",
		State:      "SP",
		PostalCode: "01310-200",
	})
	require.NoError(t, err)
	require.Equal(t, "Av. Paulista, 1578, Bela Vista, São Paulo - SP, 01310-200", created.Snapshot())
}
