package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (user, product, quantity) row. The display fields are a
// snapshot taken when the product was first added; checkout prices come from
// ProductPrice, not from the live catalog.
type CartLine struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductName  string    `gorm:"not null"`
	ProductPrice int64     `gorm:"not null"`
	ProductImage string
	Quantity     int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// CartItem is the wire representation of a cart line.
type CartItem struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
	ProductImage string `json:"product_image"`
	Quantity     int    `json:"quantity"`
}

// Item converts a cart line to its wire representation.
func (l *CartLine) Item() CartItem {
	return CartItem{
		ProductID:    l.ProductID,
		ProductName:  l.ProductName,
		ProductPrice: FormatAmount(l.ProductPrice),
		ProductImage: l.ProductImage,
		Quantity:     l.Quantity,
	}
}

// CartItems maps cart lines to wire items, never returning nil.
func CartItems(lines []CartLine) []CartItem {
	items := make([]CartItem, 0, len(lines))
	for i := range lines {
		items = append(items, lines[i].Item())
	}
	return items
}
