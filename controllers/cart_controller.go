package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/middleware"
	"storefront-backend/models"
)

// CartProvider is the service surface CartController depends on.
type CartProvider interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) ([]models.CartItem, error)
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CartController struct {
	cart CartProvider
}

func NewCartController(cart CartProvider) *CartController {
	return &CartController{cart: cart}
}

// Get returns the caller's cart.
func (cc *CartController) Get(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	items, err := cc.cart.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Add puts quantity of a product into the caller's cart.
func (cc *CartController) Add(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid request body", err))
		return
	}

	items, err := cc.cart.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid product id", err))
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid request body", err))
		return
	}

	items, err := cc.cart.UpdateQuantity(c.Request.Context(), userID, productID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Remove deletes a line from the caller's cart.
func (cc *CartController) Remove(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid product id", err))
		return
	}

	items, err := cc.cart.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
