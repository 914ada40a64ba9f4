package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyfood/happyfood-backend/pkg/db/models"
)

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error)
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, onlyOpen bool) ([]models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error)
	FindOptionGroupByID(ctx context.Context, id uuid.UUID) (*models.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, id uuid.UUID) error
	CreateOption(ctx context.Context, option *models.Option) (*models.Option, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Create(restaurant).Error; err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (r *repository) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *repository) ListRestaurants(ctx context.Context, onlyOpen bool) ([]models.Restaurant, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if onlyOpen {
		query = query.Where("open = ?", true)
	}
	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *repository) UpdateRestaurant(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("OptionGroups.Options").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("OptionGroups.Options").
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC")
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *repository) CreateOptionGroup(ctx context.Context, group *models.OptionGroup) (*models.OptionGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *repository) FindOptionGroupByID(ctx context.Context, id uuid.UUID) (*models.OptionGroup, error) {
	var group models.OptionGroup
	err := r.db.WithContext(ctx).
		Preload("Options").
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) DeleteOptionGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OptionGroup{}, "id = ?", id).Error
}

func (r *repository) CreateOption(ctx context.Context, option *models.Option) (*models.Option, error) {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return nil, err
	}
	return option, nil
}
