package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"storefront-backend/models"
)

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := &models.Product{ID: 42, Name: "Keyboard", Price: 50000}

	t.Run("new product creates a line with a snapshot", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("FindByUserAndProduct", ctx, userID, int64(42)).Return(nil, gorm.ErrRecordNotFound).Once()
		carts.On("Create", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.UserID == userID &&
				line.ProductID == 42 &&
				line.ProductName == "Keyboard" &&
				line.ProductPrice == 50000 &&
				line.Quantity == 2
		})).Return(nil).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{
			{UserID: userID, ProductID: 42, ProductName: "Keyboard", ProductPrice: 50000, Quantity: 2},
		}, nil).Once()

		items, err := svc.AddItem(ctx, userID, 42, 2)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "500.00", items[0].ProductPrice)
		carts.AssertExpectations(t)
	})

	t.Run("adding the same product again merges quantities", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		existing := &models.CartLine{UserID: userID, ProductID: 42, ProductName: "Keyboard", ProductPrice: 50000, Quantity: 2}
		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("FindByUserAndProduct", ctx, userID, int64(42)).Return(existing, nil).Once()
		carts.On("Update", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.Quantity == 5
		})).Return(nil).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{*existing}, nil).Once()

		_, err := svc.AddItem(ctx, userID, 42, 3)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(99)).Return(nil, mongo.ErrNoDocuments).Once()

		_, err := svc.AddItem(ctx, userID, 99, 1)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	})

	t.Run("non-positive quantity is a 400", func(t *testing.T) {
		svc := NewCartService(new(MockCartRepository), new(MockProductRepository))

		_, err := svc.AddItem(ctx, userID, 42, 0)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := &models.Product{ID: 42, Name: "Keyboard", Price: 50000}

	t.Run("quantity zero removes the line", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("Delete", ctx, userID, int64(42)).Return(nil).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		items, err := svc.UpdateQuantity(ctx, userID, 42, 0)
		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		carts.AssertExpectations(t)
	})

	t.Run("positive quantity replaces the line quantity", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		existing := &models.CartLine{UserID: userID, ProductID: 42, ProductPrice: 50000, Quantity: 2}
		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("FindByUserAndProduct", ctx, userID, int64(42)).Return(existing, nil).Once()
		carts.On("Update", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.Quantity == 7
		})).Return(nil).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{*existing}, nil).Once()

		_, err := svc.UpdateQuantity(ctx, userID, 42, 7)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("absent line is a no-op when the product exists", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("FindByUserAndProduct", ctx, userID, int64(42)).Return(nil, gorm.ErrRecordNotFound).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		items, err := svc.UpdateQuantity(ctx, userID, 42, 3)
		assert.NoError(t, err)
		assert.Empty(t, items)
		carts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(99)).Return(nil, mongo.ErrNoDocuments).Once()

		_, err := svc.UpdateQuantity(ctx, userID, 99, 1)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := &models.Product{ID: 42, Name: "Keyboard", Price: 50000}

	t.Run("deletes the line and returns the remaining cart", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(42)).Return(product, nil).Once()
		carts.On("Delete", ctx, userID, int64(42)).Return(nil).Once()
		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		items, err := svc.RemoveItem(ctx, userID, 42)
		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		carts.AssertExpectations(t)
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)

		products.On("FindByID", ctx, int64(999999)).Return(nil, mongo.ErrNoDocuments).Once()

		_, err := svc.RemoveItem(ctx, userID, 999999)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
		carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty cart is an empty list, not null", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		items, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("prices are formatted as rupee strings", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewCartService(carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{
			{ProductID: 1, ProductName: "Mouse", ProductPrice: 125075, Quantity: 1},
		}, nil).Once()

		items, err := svc.GetCart(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, "1250.75", items[0].ProductPrice)
	})
}
