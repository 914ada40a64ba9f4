package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
)

// Repository persists the three review kinds.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateRestaurantReview(ctx context.Context, review *models.RestaurantReview) (*models.RestaurantReview, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Repository) ListRestaurantReviews(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantReview, error) {
	var list []models.RestaurantReview
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) CreateCourierReview(ctx context.Context, review *models.CourierReview) (*models.CourierReview, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Repository) ListCourierReviews(ctx context.Context, courierID uuid.UUID) ([]models.CourierReview, error) {
	var list []models.CourierReview
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) CreateProductReview(ctx context.Context, review *models.ProductReview) (*models.ProductReview, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Repository) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	var list []models.ProductReview
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
