package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// CreateAndClearCart persists the order with its items and deletes the
	// user's cart lines in a single transaction.
	CreateAndClearCart(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByTrackingID(ctx context.Context, trackingID string) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateAndClearCart runs the checkout write. Either the order and its items
// are durably created and the cart is emptied, or none of it happens.
func (r *GormOrderRepository) CreateAndClearCart(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartLine{}).Error
	})
}

// FindByUserID retrieves a user's orders, newest first.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tracking_id = ?", trackingID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
