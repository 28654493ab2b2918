package services

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"storefront-backend/models"
)

var testAddress = models.Address{
	ShippingName:    "Asha Rao",
	ShippingAddress: "12 MG Road",
	ShippingCity:    "Bengaluru",
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("totals the cart from price snapshots and clears it atomically", func(t *testing.T) {
		orders := new(MockOrderRepository)
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewOrderService(orders, carts, products)

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{
			{ProductID: 1, ProductName: "Keyboard", ProductPrice: 50000, Quantity: 2},
			{ProductID: 2, ProductName: "Mouse", ProductPrice: 25000, Quantity: 1},
		}, nil).Once()
		orders.On("CreateAndClearCart", ctx, mock.MatchedBy(func(o *models.Order) bool {
			return o.UserID == userID &&
				o.TotalAmount == 125000 &&
				o.Status == models.OrderStatusProcessing &&
				len(o.Items) == 2 &&
				o.Items[0].PriceAtPurchase == 50000 &&
				o.Items[1].PriceAtPurchase == 25000
		})).Return(nil).Once()
		products.On("FindByID", ctx, mock.Anything).Return(nil, mongo.ErrNoDocuments)

		summary, err := svc.Checkout(ctx, userID, testAddress)
		assert.NoError(t, err)
		assert.Equal(t, "1250.00", summary.Total)
		assert.Equal(t, models.OrderStatusProcessing, summary.Status)
		assert.Len(t, summary.Items, 2)
		orders.AssertExpectations(t)
	})

	t.Run("empty cart is a client error and creates nothing", func(t *testing.T) {
		orders := new(MockOrderRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		_, err := svc.Checkout(ctx, userID, testAddress)
		assert.ErrorIs(t, err, ErrCartEmpty)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		orders.AssertNotCalled(t, "CreateAndClearCart", mock.Anything, mock.Anything)
	})

	t.Run("a failed write surfaces as an internal error", func(t *testing.T) {
		orders := new(MockOrderRepository)
		carts := new(MockCartRepository)
		svc := NewOrderService(orders, carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{
			{ProductID: 1, ProductPrice: 100, Quantity: 1},
		}, nil).Once()
		orders.On("CreateAndClearCart", ctx, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Checkout(ctx, userID, testAddress)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	})
}

func TestCartTotal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("sums price times quantity", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewOrderService(new(MockOrderRepository), carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{
			{ProductPrice: 50000, Quantity: 2},
			{ProductPrice: 25000, Quantity: 1},
		}, nil).Once()

		total, err := svc.CartTotal(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, int64(125000), total)
	})

	t.Run("empty cart is a 400", func(t *testing.T) {
		carts := new(MockCartRepository)
		svc := NewOrderService(new(MockOrderRepository), carts, new(MockProductRepository))

		carts.On("FindByUser", ctx, userID).Return([]models.CartLine{}, nil).Once()

		_, err := svc.CartTotal(ctx, userID)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	})
}

func TestTrackOrder(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	order := &models.Order{
		TrackingID:  "KR-0123456789AB",
		UserID:      owner,
		Status:      models.OrderStatusProcessing,
		TotalAmount: 125000,
		CreatedAt:   time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Keyboard", Quantity: 2, PriceAtPurchase: 50000},
		},
	}

	t.Run("owner sees the order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		svc := NewOrderService(orders, new(MockCartRepository), products)

		orders.On("FindByTrackingID", ctx, "KR-0123456789AB").Return(order, nil).Once()
		products.On("FindByID", ctx, int64(1)).Return(nil, mongo.ErrNoDocuments).Once()

		summary, err := svc.TrackOrder(ctx, owner, "KR-0123456789AB")
		assert.NoError(t, err)
		assert.Equal(t, "KR-0123456789AB", summary.TrackingID)
		assert.Equal(t, "07 Mar 2026", summary.Date)
		assert.Equal(t, "1250.00", summary.Total)
		assert.Equal(t, PlaceholderImage, summary.Items[0].Image)
	})

	t.Run("another user's order is forbidden", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockCartRepository), new(MockProductRepository))

		orders.On("FindByTrackingID", ctx, "KR-0123456789AB").Return(order, nil).Once()

		_, err := svc.TrackOrder(ctx, stranger, "KR-0123456789AB")
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusForbidden, svcErr.StatusCode)
	})

	t.Run("unknown tracking id is a 404", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockCartRepository), new(MockProductRepository))

		orders.On("FindByTrackingID", ctx, "KR-FFFFFFFFFFFF").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.TrackOrder(ctx, owner, "KR-FFFFFFFFFFFF")
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	})
}

func TestNewTrackingID(t *testing.T) {
	pattern := regexp.MustCompile(`^KR-[0-9A-F]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTrackingID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "tracking ids should not repeat")
		seen[id] = true
	}
}
