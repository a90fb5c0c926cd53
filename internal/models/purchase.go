package models

import "time"

type ShippingDetails struct {
	FullName   string `json:"fullName" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,max=500"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
}

// PaymentDetails are only shape-checked; no payment is taken.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,credit_card"`
	Expiry     string `json:"expiry" validate:"required,len=5"`
	CVC        string `json:"cvc" validate:"required,numeric,min=3,max=4"`
}

type CheckoutRequest struct {
	Shipping ShippingDetails `json:"shipping" validate:"required"`
	Payment  PaymentDetails  `json:"payment" validate:"required"`
}

type Purchase struct {
	ID          string          `json:"id"`
	Items       []CartLine      `json:"items"`
	Total       float64         `json:"total"`
	Shipping    ShippingDetails `json:"shipping"`
	PaymentRef  string          `json:"paymentRef"`
	PurchasedAt time.Time       `json:"purchasedAt"`
}

func (p Purchase) ToFields() map[string]any {
	return map[string]any{
		"id":    p.ID,
		"items": CartLinesToFields(p.Items),
		"total": p.Total,
		"shipping": map[string]any{
			"fullName":   p.Shipping.FullName,
			"email":      p.Shipping.Email,
			"address":    p.Shipping.Address,
			"city":       p.Shipping.City,
			"postalCode": p.Shipping.PostalCode,
			"country":    p.Shipping.Country,
		},
		"paymentRef":  p.PaymentRef,
		"purchasedAt": p.PurchasedAt.UTC().Format(time.RFC3339),
	}
}

func PurchasesToFields(purchases []Purchase) []any {
	out := make([]any, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, p.ToFields())
	}

	return out
}

type CheckoutResponse struct {
	OrderNumber string    `json:"orderNumber"`
	Total       float64   `json:"total"`
	Items       int       `json:"items"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
