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
)

// OrderProvider is the service surface OrderController depends on.
type OrderProvider interface {
	Checkout(ctx context.Context, userID uuid.UUID, address models.Address) (*models.OrderSummary, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.OrderSummary, error)
	TrackOrder(ctx context.Context, userID uuid.UUID, trackingID string) (*models.OrderSummary, error)
}

type OrderController struct {
	orders   OrderProvider
	validate *validator.Validate
}

func NewOrderController(orders OrderProvider) *OrderController {
	return &OrderController{orders: orders, validate: validator.New()}
}

// Checkout turns the caller's cart into an order shipped to the given
// address.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "shipping name, address and city are required", err))
		return
	}
	if err := oc.validate.Struct(address); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "shipping name, address and city are required", err))
		return
	}

	summary, err := oc.orders.Checkout(c.Request.Context(), userID, address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": summary})
}

// List returns the caller's orders, newest first.
func (oc *OrderController) List(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := oc.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Track returns one of the caller's orders by tracking id.
func (oc *OrderController) Track(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	trackingID := c.Param("trackingId")
	summary, err := oc.orders.TrackOrder(c.Request.Context(), userID, trackingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": summary})
}
