package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
)

// Repository defines persistence operations for carts and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrCreate(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error)
	Find(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error)
	FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem, options []models.Option) (*models.CartItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error
	ReplaceItemOptions(ctx context.Context, item *models.CartItem, options []models.Option) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrCreate(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	cart, err := r.Find(ctx, userID, restaurantID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Cart{UserID: userID, RestaurantID: restaurantID}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// lost a create race; the unique index guarantees the winner exists
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.Find(ctx, userID, restaurantID)
		}
		return nil, err
	}
	return fresh, nil
}

func (r *repository) Find(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Items.Options").
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Items.Options").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Options").
		First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.CartItem, options []models.Option) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Options", "Product").Create(item).Error; err != nil {
		return nil, err
	}
	if len(options) > 0 {
		if err := db.Model(item).Association("Options").Replace(options); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (r *repository) UpdateItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) ReplaceItemOptions(ctx context.Context, item *models.CartItem, options []models.Option) error {
	return r.db.WithContext(ctx).Model(item).Association("Options").Replace(options)
}

func (r *repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM cart_item_options WHERE cart_item_id = ?", itemID).Error; err != nil {
		return err
	}
	return db.Delete(&models.CartItem{}, "id = ?", itemID).Error
}

func (r *repository) Clear(ctx context.Context, cartID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	err := db.Exec(
		"DELETE FROM cart_item_options WHERE cart_item_id IN (SELECT id FROM cart_items WHERE cart_id = ?)",
		cartID,
	).Error
	if err != nil {
		return err
	}
	return db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error
}
