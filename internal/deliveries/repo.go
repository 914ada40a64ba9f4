package deliveries

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
)

// Repository persists deliveries and their append-only ping trail.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a deliveries repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the delivery; the unique index on order_id rejects a second one.
func (r *Repository) Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// FindByID loads one delivery with its pings in recording order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Pings", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC")
		}).
		First(&delivery, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

// FindByOrder loads the delivery attached to one order.
func (r *Repository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Update applies column updates to one delivery.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AddPing appends one GPS sample.
func (r *Repository) AddPing(ctx context.Context, ping *models.DeliveryPing) (*models.DeliveryPing, error) {
	if err := r.db.WithContext(ctx).Create(ping).Error; err != nil {
		return nil, err
	}
	return ping, nil
}

// FindCourierForOrder resolves the courier assigned to an order's
// delivery, nil when there is no delivery or no assignment yet.
func (r *Repository) FindCourierForOrder(ctx context.Context, orderID uuid.UUID) (*uuid.UUID, error) {
	delivery, err := r.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return delivery.CourierID, nil
}
