package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMaxOrderNumber is the inclusive ceiling of the per-restaurant
// daily sequence; the next number past it wraps to 1.
const DefaultMaxOrderNumber = 99999

// Sequencer hands out per-(restaurant, reference date) daily order
// numbers. Next must run inside the transaction that inserts the order:
// on postgres it takes an advisory xact lock scoped to the restaurant
// and date, so the lock is held from the MAX read until commit. The
// unique index on (restaurant_id, order_number, reference_date) is the
// backstop for engines without advisory locks.
type Sequencer struct {
	max int
}

// NewSequencer builds a sequencer with the provided ceiling.
func NewSequencer(max int) (*Sequencer, error) {
	if max <= 0 {
		return nil, fmt.Errorf("max order number must be positive")
	}
	return &Sequencer{max: max}, nil
}

// Next reserves the next daily number for the restaurant within tx.
func (s *Sequencer) Next(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, referenceDate string) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required")
	}

	if tx.Dialector.Name() == "postgres" {
		scope := fmt.Sprintf("order_seq:%s:%s", restaurantID, referenceDate)
		if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", scope).Error; err != nil {
			return 0, fmt.Errorf("acquire sequence lock: %w", err)
		}
	}

	var current int
	err := tx.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(order_number), 0) FROM orders WHERE restaurant_id = ? AND reference_date = ?",
			restaurantID, referenceDate).
		Scan(&current).Error
	if err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	next := current + 1
	if next > s.max {
		next = 1
	}
	return next, nil
}
