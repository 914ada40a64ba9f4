package orders

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/dbtest"
	"github.com/happyfood/happyfood-backend/pkg/db/models"
	"github.com/happyfood/happyfood-backend/pkg/enums"
)

func seedOrder(t *testing.T, db *gorm.DB, restaurantID uuid.UUID, number int, date string) {
	t.Helper()
	order := &models.Order{
		UserID:          uuid.New(),
		RestaurantID:    restaurantID,
		OrderNumber:     number,
		ReferenceDate:   date,
		Status:          enums.OrderStatusPending,
		DeliveryAddress: "Rua A, 1",
		OriginAddress:   "Rua B, 2",
	}
	require.NoError(t, db.Create(order).Error)
}

func TestSequencerStartsAtOne(t *testing.T) {
	db := dbtest.New(t)
	seq, err := NewSequencer(DefaultMaxOrderNumber)
	require.NoError(t, err)

	restaurant := uuid.New()
	err = db.Transaction(func(tx *gorm.DB) error {
		n, err := seq.Next(context.Background(), tx, restaurant, "2025-03-01")
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}

func TestSequencerIsPerRestaurantAndDate(t *testing.T) {
	db := dbtest.New(t)
	seq, err := NewSequencer(DefaultMaxOrderNumber)
	require.NoError(t, err)

	restaurantA := uuid.New()
	restaurantB := uuid.New()
	seedOrder(t, db, restaurantA, 7, "2025-03-01")
	seedOrder(t, db, restaurantA, 3, "2025-02-28")

	err = db.Transaction(func(tx *gorm.DB) error {
		ctx := context.Background()

		n, err := seq.Next(ctx, tx, restaurantA, "2025-03-01")
		require.NoError(t, err)
		require.Equal(t, 8, n)

		// a new day restarts the sequence
		n, err = seq.Next(ctx, tx, restaurantA, "2025-03-02")
		require.NoError(t, err)
		require.Equal(t, 1, n)

		// another restaurant is independent
		n, err = seq.Next(ctx, tx, restaurantB, "2025-03-01")
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}

func TestSequencerWrapsPastCeiling(t *testing.T) {
	db := dbtest.New(t)
	seq, err := NewSequencer(3)
	require.NoError(t, err)

	restaurant := uuid.New()
	seedOrder(t, db, restaurant, 3, "2025-03-01")

	err = db.Transaction(func(tx *gorm.DB) error {
		n, err := seq.Next(context.Background(), tx, restaurant, "2025-03-01")
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}

func TestUniqueIndexBackstopsDuplicateNumbers(t *testing.T) {
	db := dbtest.New(t)

	restaurant := uuid.New()
	seedOrder(t, db, restaurant, 1, "2025-03-01")

	err := db.Create(&models.Order{
		UserID:          uuid.New(),
		RestaurantID:    restaurant,
		OrderNumber:     1,
		ReferenceDate:   "2025-03-01",
		Status:          enums.OrderStatusPending,
		DeliveryAddress: "Rua A, 1",
		OriginAddress:   "Rua B, 2",
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSequencerConcurrentCheckoutsGetDistinctNumbers(t *testing.T) {
	// file-backed sqlite with immediate transactions serializes the
	// writers; postgres reaches the same guarantee via the advisory lock
	db := dbtest.NewFile(t)
	seq, err := NewSequencer(DefaultMaxOrderNumber)
	require.NoError(t, err)

	restaurant := uuid.New()
	const workers = 8

	var wg sync.WaitGroup
	numbers := make([]int, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			errs[slot] = db.Transaction(func(tx *gorm.DB) error {
				n, err := seq.Next(context.Background(), tx, restaurant, "2025-03-01")
				if err != nil {
					return err
				}
				numbers[slot] = n
				return tx.Create(&models.Order{
					UserID:          uuid.New(),
					RestaurantID:    restaurant,
					OrderNumber:     n,
					ReferenceDate:   "2025-03-01",
					Status:          enums.OrderStatusPending,
					DeliveryAddress: "Rua A, 1",
					OriginAddress:   "Rua B, 2",
				}).Error
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	sort.Ints(numbers)
	for i := 0; i < workers; i++ {
		require.Equal(t, i+1, numbers[i], "expected dense sequence 1..%d, got %v", workers, numbers)
	}
}
