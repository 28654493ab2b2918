package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/services"
)

// --- Mock service ---

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) ([]models.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) ([]models.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func injectUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID)
		c.Next()
	}
}

// --- Tests ---

func TestCartControllerAdd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	t.Run("Success - 200 OK", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		mockService.On("AddItem", mock.Anything, userID, int64(42), 2).Return([]models.CartItem{
			{ProductID: 42, ProductName: "Keyboard", ProductPrice: "500.00", Quantity: 2},
		}, nil).Once()

		router := gin.New()
		router.POST("/cart", injectUser(userID), controller.Add)

		payload := `{"product_id": 42, "quantity": 2}`
		req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "500.00")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - unknown product - 404", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		mockService.On("AddItem", mock.Anything, userID, int64(99), 1).
			Return(nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "product not found"}).Once()

		router := gin.New()
		router.POST("/cart", injectUser(userID), controller.Add)

		payload := `{"product_id": 99, "quantity": 1}`
		req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "product not found")
	})

	t.Run("Failure - invalid body - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		router := gin.New()
		router.POST("/cart", injectUser(userID), controller.Add)

		payload := `{"product_id": 42, "quantity": 0}`
		req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - no identity - 401", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		router := gin.New()
		router.POST("/cart", controller.Add)

		payload := `{"product_id": 42, "quantity": 1}`
		req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestCartControllerUpdateQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	t.Run("quantity zero is forwarded to the service", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		mockService.On("UpdateQuantity", mock.Anything, userID, int64(42), 0).
			Return([]models.CartItem{}, nil).Once()

		router := gin.New()
		router.PUT("/cart/:productId", injectUser(userID), controller.UpdateQuantity)

		payload := `{"quantity": 0}`
		req, _ := http.NewRequest(http.MethodPut, "/cart/42", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("non-numeric product id - 400", func(t *testing.T) {
		mockService := new(MockCartService)
		controller := NewCartController(mockService)

		router := gin.New()
		router.PUT("/cart/:productId", injectUser(userID), controller.UpdateQuantity)

		req, _ := http.NewRequest(http.MethodPut, "/cart/abc", bytes.NewBufferString(`{"quantity": 1}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCartControllerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	mockService := new(MockCartService)
	controller := NewCartController(mockService)

	mockService.On("GetCart", mock.Anything, userID).Return([]models.CartItem{}, nil).Once()

	router := gin.New()
	router.GET("/cart", injectUser(userID), controller.Get)

	req, _ := http.NewRequest(http.MethodGet, "/cart", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"items": []}`, recorder.Body.String())
}
