package models

import "fmt"

// BookingContext is the payload carried from a "book now" action into checkout.
// It lives in the session only for the duration of one checkout.
type BookingContext struct {
	ActivityID string `json:"activityId" validate:"required"`
	Title      string `json:"title"`
	Price      int    `json:"price" validate:"min=0"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	Date       string `json:"date"`
	Total      int    `json:"total" validate:"min=0"`
}

// TotalAmount returns Total, or price × quantity when Total was not supplied
func (b BookingContext) TotalAmount() int {
	if b.Total > 0 {
		return b.Total
	}
	return b.Price * b.Quantity
}

// CartItem synthesizes a single cart item from the booking payload
func (b BookingContext) CartItem() CartItem {
	total := b.TotalAmount()
	return CartItem{
		ID:         fmt.Sprintf("direct-%s", b.ActivityID),
		ActivityID: b.ActivityID,
		Activity: ActivityRef{
			ID:    b.ActivityID,
			Title: b.Title,
			Price: b.Price,
		},
		Quantity:   b.Quantity,
		Date:       b.Date,
		TotalPrice: &total,
		Synthetic:  true,
	}
}
