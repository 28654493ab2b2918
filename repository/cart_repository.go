package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/models"
)

// CartRepository defines the interface for cart line data access
type CartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartLine, error)
	Create(ctx context.Context, line *models.CartLine) error
	Update(ctx context.Context, line *models.CartLine) error
	Delete(ctx context.Context, userID uuid.UUID, productID int64) error
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser retrieves the cart lines for a user, oldest first so the cart
// order is stable across mutations.
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormCartRepository) Create(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *GormCartRepository) Update(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *GormCartRepository) Delete(ctx context.Context, userID uuid.UUID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{}).Error
}
