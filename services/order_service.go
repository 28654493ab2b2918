package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-backend/common/logger"
	"storefront-backend/models"
	"storefront-backend/repository"
)

const orderDateFormat = "02 Jan 2006"

type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, products repository.ProductRepository) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products}
}

// CartTotal sums the user's cart in paise using the cart-time price
// snapshots. An empty cart is a client error.
func (s *OrderService) CartTotal(ctx context.Context, userID uuid.UUID) (int64, error) {
	lines, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return 0, newServiceError(http.StatusInternalServerError, "failed to fetch cart")
	}
	if len(lines) == 0 {
		return 0, ErrCartEmpty
	}

	var total int64
	for _, line := range lines {
		total += line.ProductPrice * int64(line.Quantity)
	}
	return total, nil
}

// Checkout turns the user's cart into an order. Prices come from the
// cart-time snapshots. The order insert and the cart clear run in one
// transaction; a failed checkout leaves the cart untouched.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, address models.Address) (*models.OrderSummary, error) {
	lines, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to place order")
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	var total int64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		total += line.ProductPrice * int64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.ProductPrice,
		})
	}

	order := &models.Order{
		TrackingID:      NewTrackingID(),
		UserID:          userID,
		Status:          models.OrderStatusProcessing,
		TotalAmount:     total,
		ShippingName:    address.ShippingName,
		ShippingAddress: address.ShippingAddress,
		ShippingCity:    address.ShippingCity,
		ShippingState:   address.ShippingState,
		ShippingZipCode: address.ShippingZipCode,
		ShippingPhone:   address.ShippingPhone,
		Items:           items,
	}

	if err := s.orders.CreateAndClearCart(ctx, order); err != nil {
		logger.Log.Error("failed to persist order", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to place order")
	}

	logger.Log.Info("order placed",
		zap.String("user_id", userID.String()),
		zap.String("tracking_id", order.TrackingID),
		zap.Int64("total_amount", total))

	summary := s.summarize(ctx, order)
	return &summary, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderSummary, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch orders")
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, s.summarize(ctx, &orders[i]))
	}
	return summaries, nil
}

// TrackOrder returns one order by tracking id. Orders belonging to another
// user are forbidden, not hidden.
func (s *OrderService) TrackOrder(ctx context.Context, userID uuid.UUID, trackingID string) (*models.OrderSummary, error) {
	order, err := s.orders.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newServiceError(http.StatusNotFound, "order not found")
		}
		logger.Log.Error("failed to fetch order", zap.String("tracking_id", trackingID), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch order")
	}
	if order.UserID != userID {
		return nil, newServiceError(http.StatusForbidden, "you do not have access to this order")
	}

	summary := s.summarize(ctx, order)
	return &summary, nil
}

// summarize builds the wire view of an order. Item images are resolved from
// the live catalog best-effort; a missing or unreadable product falls back to
// the placeholder.
func (s *OrderService) summarize(ctx context.Context, order *models.Order) models.OrderSummary {
	items := make([]models.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		image := PlaceholderImage
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil {
			image = PrimaryImage(product.MediaJSON)
		}
		items = append(items, models.OrderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       models.FormatAmount(item.PriceAtPurchase),
			Image:       image,
		})
	}
	return models.OrderSummary{
		TrackingID: order.TrackingID,
		Date:       order.CreatedAt.Format(orderDateFormat),
		Total:      models.FormatAmount(order.TotalAmount),
		Status:     order.Status,
		Items:      items,
	}
}

// NewTrackingID generates a customer-facing order reference.
func NewTrackingID() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("KR-%s", hex[:12])
}
