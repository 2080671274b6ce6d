package models

// ActivityRef is the slice of an activity that a cart item carries
type ActivityRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

// CartItem represents an item in the remote shopping cart
type CartItem struct {
	ID         string      `json:"id"`
	ActivityID string      `json:"activityId"`
	Activity   ActivityRef `json:"activity"`
	Quantity   int         `json:"quantity"`
	Date       string      `json:"date,omitempty"`
	TotalPrice *int        `json:"totalPrice,omitempty"`

	// Synthetic marks an item built locally from a direct booking while the
	// remote cart had not caught up yet. Its ID is not a server cart id.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Subtotal returns totalPrice when the server supplied one, price × quantity otherwise
func (i CartItem) Subtotal() int {
	if i.TotalPrice != nil {
		return *i.TotalPrice
	}
	return i.Activity.Price * i.Quantity
}

// CartTotal sums the subtotal of every item
func CartTotal(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// CartIDs returns the server cart ids of the given items, skipping synthetic ones
func CartIDs(items []CartItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Synthetic || item.ID == "" {
			continue
		}
		ids = append(ids, item.ID)
	}
	return ids
}

// HasSynthetic reports whether any item was synthesized locally
func HasSynthetic(items []CartItem) bool {
	for _, item := range items {
		if item.Synthetic {
			return true
		}
	}
	return false
}
