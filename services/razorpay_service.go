package services

import (
	"net/http"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"

	"storefront-backend/common/logger"
)

// PaymentGateway abstracts the payment provider so controllers and tests do
// not depend on the SDK directly.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, receipt, customerEmail string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// GatewayOrder is the provider-side order handed back to the client so it
// can open the payment widget.
type GatewayOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// RazorpayGateway implements PaymentGateway against the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

// CreateOrder registers an order for the given amount with Razorpay. Amounts
// are already in paise, which is the unit Razorpay expects. The customer
// email travels in the order notes for reconciliation.
func (g *RazorpayGateway) CreateOrder(amountPaise int64, receipt, customerEmail string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if customerEmail != "" {
		data["notes"] = map[string]interface{}{"email": customerEmail}
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		logger.Log.Error("razorpay order creation failed", zap.Error(err))
		return nil, newServiceError(http.StatusBadGateway, "failed to create payment order")
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		logger.Log.Error("razorpay order response missing id")
		return nil, newServiceError(http.StatusBadGateway, "failed to create payment order")
	}

	return &GatewayOrder{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    g.keyID,
	}, nil
}

// VerifySignature checks the HMAC signature Razorpay sends with a payment
// callback.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}
