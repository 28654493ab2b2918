package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-backend/common/logger"
	"storefront-backend/models"
	"storefront-backend/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the user's cart lines as wire items, never nil.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	lines, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch cart")
	}
	return models.CartItems(lines), nil
}

// AddItem adds quantity of a product to the cart. An existing line for the
// product has its quantity increased; a new line captures the add-time
// display snapshot. Returns the full cart.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, newServiceError(http.StatusBadRequest, "quantity must be greater than zero")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newServiceError(http.StatusNotFound, "product not found")
		}
		logger.Log.Error("failed to fetch product", zap.Int64("product_id", productID), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to add item to cart")
	}

	line, err := s.carts.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		line.Quantity += quantity
		if err := s.carts.Update(ctx, line); err != nil {
			logger.Log.Error("failed to update cart line", zap.Error(err))
			return nil, newServiceError(http.StatusInternalServerError, "failed to add item to cart")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		newLine := &models.CartLine{
			UserID:       userID,
			ProductID:    productID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			ProductImage: PrimaryImage(product.MediaJSON),
			Quantity:     quantity,
		}
		if err := s.carts.Create(ctx, newLine); err != nil {
			logger.Log.Error("failed to create cart line", zap.Error(err))
			return nil, newServiceError(http.StatusInternalServerError, "failed to add item to cart")
		}
	default:
		logger.Log.Error("failed to look up cart line", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to add item to cart")
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets the quantity of a cart line. Zero or negative removes
// the line. Updating a line that does not exist is a no-op as long as the
// product is real. Returns the full cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newServiceError(http.StatusNotFound, "product not found")
		}
		logger.Log.Error("failed to fetch product", zap.Int64("product_id", productID), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to update cart")
	}

	if quantity <= 0 {
		return s.removeLine(ctx, userID, productID)
	}

	line, err := s.carts.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.GetCart(ctx, userID)
		}
		logger.Log.Error("failed to look up cart line", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to update cart")
	}

	line.Quantity = quantity
	if err := s.carts.Update(ctx, line); err != nil {
		logger.Log.Error("failed to update cart line", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to update cart")
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem deletes a cart line. The product must exist in the catalog;
// removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) ([]models.CartItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newServiceError(http.StatusNotFound, "product not found")
		}
		logger.Log.Error("failed to fetch product", zap.Int64("product_id", productID), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to remove item from cart")
	}
	return s.removeLine(ctx, userID, productID)
}

func (s *CartService) removeLine(ctx context.Context, userID uuid.UUID, productID int64) ([]models.CartItem, error) {
	if err := s.carts.Delete(ctx, userID, productID); err != nil {
		logger.Log.Error("failed to delete cart line", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to remove item from cart")
	}
	return s.GetCart(ctx, userID)
}
