package dto

import "storefront-api/internal/model"

type CartItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartRequest struct {
	Items []CartItemInput `json:"items"`
}

type CreatePaymentIntentRequest struct {
	// optional overrides for the configured constants
	TaxRate     *float64 `json:"taxRate,omitempty"`
	ShippingFee *float64 `json:"shippingFee,omitempty"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
}

type CreateOrderRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	// optional partial-checkout filter; unmatched ids are ignored
	ProductIDs []string `json:"productIds,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type RecordPaymentRequest struct {
	OrderID string `json:"orderId"`
}

type CreateShipmentRequest struct {
	OrderID        string        `json:"orderId"`
	Address        model.Address `json:"address"`
	TrackingNumber string        `json:"trackingNumber"`
	Carrier        string        `json:"carrier"`
}

type WishlistRequest struct {
	ProductID string `json:"productId"`
}
