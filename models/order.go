package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Only the initial status is set by any endpoint in scope;
// later transitions happen out-of-band.
const (
	OrderStatusProcessing = "PROCESSING"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TrackingID  string    `gorm:"uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PROCESSING'"`
	TotalAmount int64     `gorm:"not null"`

	ShippingName    string `gorm:"not null"`
	ShippingAddress string `gorm:"not null"`
	ShippingCity    string `gorm:"not null"`
	ShippingState   string
	ShippingZipCode string
	ShippingPhone   string

	CreatedAt time.Time   `gorm:"autoCreateTime"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem carries the price snapshot taken at purchase time. It is never
// recomputed from the catalog.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       int64     `gorm:"not null"`
	ProductName     string    `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	PriceAtPurchase int64     `gorm:"not null"`
}

// Address is the shipping address supplied at checkout.
type Address struct {
	ShippingName    string `json:"shipping_name" binding:"required" validate:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required" validate:"required"`
	ShippingCity    string `json:"shipping_city" binding:"required" validate:"required"`
	ShippingState   string `json:"shipping_state"`
	ShippingZipCode string `json:"shipping_zip_code"`
	ShippingPhone   string `json:"shipping_phone"`
}

// OrderItemView is the wire representation of an order line.
type OrderItemView struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// OrderSummary is the wire representation of an order.
type OrderSummary struct {
	TrackingID string          `json:"tracking_id"`
	Date       string          `json:"date"`
	Total      string          `json:"total"`
	Status     string          `json:"status"`
	Items      []OrderItemView `json:"items"`
}
