package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/services"
)

// PaymentProvider is the service surface PaymentController depends on.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, email string) (*services.GatewayOrder, error)
	VerifyAndCheckout(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string, address models.Address) (*services.PaymentResult, error)
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string         `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string         `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string         `json:"razorpay_signature" binding:"required"`
	Address           models.Address `json:"address" binding:"required"`
}

type PaymentController struct {
	payments PaymentProvider
	validate *validator.Validate
}

func NewPaymentController(payments PaymentProvider) *PaymentController {
	return &PaymentController{payments: payments, validate: validator.New()}
}

// CreateOrder opens a gateway order for the caller's cart total.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	email, _ := middleware.GetEmail(c)
	order, err := pc.payments.CreateOrder(c.Request.Context(), userID, email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Verify checks the gateway callback signature and places the order.
func (pc *PaymentController) Verify(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid request body", err))
		return
	}
	if err := pc.validate.Struct(req.Address); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "shipping name, address and city are required", err))
		return
	}

	result, err := pc.payments.VerifyAndCheckout(
		c.Request.Context(),
		userID,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
		req.Address,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
