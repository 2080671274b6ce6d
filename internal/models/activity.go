package models

// Activity is a bookable travel activity from the remote catalog
type Activity struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"categoryId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURLs     []string  `json:"imageUrls"`
	Price         int       `json:"price"`
	PriceDiscount int       `json:"price_discount"`
	Rating        float64   `json:"rating"`
	TotalReviews  int       `json:"total_reviews"`
	Facilities    string    `json:"facilities"`
	Address       string    `json:"address"`
	Province      string    `json:"province"`
	City          string    `json:"city"`
	LocationMaps  string    `json:"location_maps"`
	Category      *Category `json:"category,omitempty"`
}

// EffectivePrice returns the discounted price when a discount is set
func (a *Activity) EffectivePrice() int {
	if a.PriceDiscount > 0 && a.PriceDiscount < a.Price {
		return a.PriceDiscount
	}
	return a.Price
}

// Ref builds the cart-facing reference for this activity
func (a *Activity) Ref() ActivityRef {
	return ActivityRef{ID: a.ID, Title: a.Title, Price: a.EffectivePrice()}
}

// Category groups activities
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Promo is a discount code advertised by the storefront
type Promo struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	ImageURL           string `json:"imageUrl"`
	TermsCondition     string `json:"terms_condition"`
	PromoCode          string `json:"promo_code"`
	PromoDiscountPrice int    `json:"promo_discount_price"`
	MinimumClaimPrice  int    `json:"minimum_claim_price"`
}

// Banner is a homepage banner
type Banner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}
