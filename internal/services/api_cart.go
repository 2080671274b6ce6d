package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"travel-storefront/internal/models"
)

// AddToCart adds one activity to the caller's remote cart
func (c *APIClient) AddToCart(ctx context.Context, req models.AddToCartRequest) Result[Ack] {
	return ack(do[json.RawMessage](ctx, c, http.MethodPost, "/add-to-cart", req, "Failed to add activity to cart"))
}

// UpdateCart changes the quantity of a cart item
func (c *APIClient) UpdateCart(ctx context.Context, cartID string, req models.UpdateCartRequest) Result[Ack] {
	return ack(do[json.RawMessage](ctx, c, http.MethodPost, "/update-cart/"+url.PathEscape(cartID), req, "Failed to update cart"))
}

// DeleteCart removes a cart item
func (c *APIClient) DeleteCart(ctx context.Context, cartID string) Result[Ack] {
	return ack(do[json.RawMessage](ctx, c, http.MethodDelete, "/delete-cart/"+url.PathEscape(cartID), nil, "Failed to remove item from cart"))
}

// GetCarts lists the caller's cart items
func (c *APIClient) GetCarts(ctx context.Context) Result[[]models.CartItem] {
	return do[[]models.CartItem](ctx, c, http.MethodGet, "/carts", nil, "Failed to fetch cart")
}
