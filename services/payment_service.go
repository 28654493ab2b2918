package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/common/logger"
	"storefront-backend/models"
)

// PaymentResult is returned after a verified payment callback.
type PaymentResult struct {
	Message string               `json:"message"`
	Order   *models.OrderSummary `json:"order,omitempty"`
}

// PaymentService ties the payment gateway to checkout.
type PaymentService struct {
	gateway PaymentGateway
	orders  *OrderService
}

func NewPaymentService(gateway PaymentGateway, orders *OrderService) *PaymentService {
	return &PaymentService{gateway: gateway, orders: orders}
}

// CreateOrder opens a gateway order for the exact cart total, tagged with
// the caller's email.
func (s *PaymentService) CreateOrder(ctx context.Context, userID uuid.UUID, email string) (*GatewayOrder, error) {
	total, err := s.orders.CartTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.gateway.CreateOrder(total, userID.String(), email)
}

// VerifyAndCheckout validates the gateway signature and, on success, runs the
// regular checkout. A verified callback against an already-empty cart is
// treated as a duplicate delivery of the same event, not an error.
func (s *PaymentService) VerifyAndCheckout(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string, address models.Address) (*PaymentResult, error) {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		logger.Log.Warn("payment signature verification failed",
			zap.String("user_id", userID.String()),
			zap.String("gateway_order_id", orderID))
		return nil, newServiceError(http.StatusBadRequest, "payment signature verification failed")
	}

	summary, err := s.orders.Checkout(ctx, userID, address)
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			return &PaymentResult{Message: "payment already processed"}, nil
		}
		return nil, err
	}

	return &PaymentResult{Message: "payment verified", Order: summary}, nil
}
