package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

func TestCartHandler_ViewCart(t *testing.T) {
	api := new(MockAPI)
	h := NewCartHandler(api, newTestStore(t))

	withTotal := 280000
	api.On("GetCarts", mock.Anything).Return(success([]models.CartItem{
		{ID: "cart-1", Activity: models.ActivityRef{Price: 150000}, Quantity: 2},
		{ID: "cart-2", Activity: models.ActivityRef{Price: 100000}, Quantity: 3, TotalPrice: &withTotal},
	}))

	rr := httptest.NewRecorder()
	h.ViewCart(rr, httptest.NewRequest("GET", "/cart", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data CartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Data.Items, 2)
	assert.Equal(t, 580000, body.Data.Total)
}

func TestCartHandler_ViewCartRemoteFailure(t *testing.T) {
	api := new(MockAPI)
	h := NewCartHandler(api, newTestStore(t))
	api.On("GetCarts", mock.Anything).Return(failure[[]models.CartItem](0, "Failed to fetch cart"))

	rr := httptest.NewRecorder()
	h.ViewCart(rr, httptest.NewRequest("GET", "/cart", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to fetch cart"}`, rr.Body.String())
}

func TestCartHandler_AddToCart(t *testing.T) {
	t.Run("valid request drops a review-step flow", func(t *testing.T) {
		api := new(MockAPI)
		store := newTestStore(t)
		h := NewCartHandler(api, store)
		api.On("AddToCart", mock.Anything, models.AddToCartRequest{ActivityID: "act-1", Quantity: 1}).
			Return(success(services.Ack{Message: "Added"}))

		b := newBrowser(t)
		b.seed(store, map[string]interface{}{middleware.SessionKeyCheckout: `{"state":"review_and_select_payment","loaded":true}`})

		rr := b.do(h.AddToCart, jsonRequest("POST", "/cart", `{"activityId":"act-1","quantity":1}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, b.session(store).Values[middleware.SessionKeyCheckout])
	})

	t.Run("flow with a transaction is kept", func(t *testing.T) {
		api := new(MockAPI)
		store := newTestStore(t)
		h := NewCartHandler(api, store)
		api.On("AddToCart", mock.Anything, mock.Anything).Return(success(services.Ack{}))

		b := newBrowser(t)
		b.seed(store, map[string]interface{}{middleware.SessionKeyCheckout: `{"state":"upload_proof","loaded":true,"transaction":{"id":"tx-1"}}`})

		b.do(h.AddToCart, jsonRequest("POST", "/cart", `{"activityId":"act-2"}`))
		assert.NotNil(t, b.session(store).Values[middleware.SessionKeyCheckout])
	})

	t.Run("missing activity", func(t *testing.T) {
		api := new(MockAPI)
		h := NewCartHandler(api, newTestStore(t))

		rr := httptest.NewRecorder()
		h.AddToCart(rr, jsonRequest("POST", "/cart", `{"quantity":1}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		api.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything)
	})
}

func TestCartHandler_UpdateAndRemove(t *testing.T) {
	api := new(MockAPI)
	h := NewCartHandler(api, newTestStore(t))
	api.On("UpdateCart", mock.Anything, "cart-1", models.UpdateCartRequest{Quantity: 3}).Return(success(services.Ack{}))
	api.On("DeleteCart", mock.Anything, "cart-1").Return(failure[services.Ack](http.StatusNotFound, "Cart not found"))

	r := chi.NewRouter()
	r.Post("/cart/{id}", h.UpdateCartItem)
	r.Delete("/cart/{id}", h.RemoveCartItem)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonRequest("POST", "/cart/cart-1", `{"quantity":3}`))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonRequest("POST", "/cart/cart-1", `{"quantity":0}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/cart/cart-1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cart not found")

	api.AssertExpectations(t)
}

func TestCartHandler_BookNow(t *testing.T) {
	t.Run("stores the booking and starts a direct checkout", func(t *testing.T) {
		api := new(MockAPI)
		store := newTestStore(t)
		h := NewCartHandler(api, store)
		api.On("AddToCart", mock.Anything, models.AddToCartRequest{ActivityID: "act-1", Quantity: 2, Date: "2026-11-01"}).
			Return(success(services.Ack{}))

		b := newBrowser(t)
		b.seed(store, map[string]interface{}{middleware.SessionKeyCheckout: `{"state":"review_and_select_payment"}`})

		form := url.Values{"activityId": {"act-1"}, "title": {"Snorkeling"}, "price": {"150000"}, "quantity": {"2"}, "date": {"2026-11-01"}}
		req := httptest.NewRequest("POST", "/book-now", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		rr := b.do(h.BookNow, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, CheckoutDirectPath, rr.Header().Get("HX-Redirect"))

		session := b.session(store)
		assert.Nil(t, session.Values[middleware.SessionKeyCheckout])
		booking := bookingFromSession(session)
		require.NotNil(t, booking)
		assert.Equal(t, "Snorkeling", booking.Title)
		assert.Equal(t, 300000, booking.TotalAmount())
	})

	t.Run("remote failure keeps the visitor on the page", func(t *testing.T) {
		api := new(MockAPI)
		h := NewCartHandler(api, newTestStore(t))
		api.On("AddToCart", mock.Anything, mock.Anything).Return(failure[services.Ack](http.StatusBadRequest, "Activity not found"))

		rr := httptest.NewRecorder()
		h.BookNow(rr, jsonRequest("POST", "/book-now", `{"activityId":"act-x","quantity":1}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Activity not found")
	})

	t.Run("invalid booking", func(t *testing.T) {
		api := new(MockAPI)
		h := NewCartHandler(api, newTestStore(t))

		rr := httptest.NewRecorder()
		h.BookNow(rr, jsonRequest("POST", "/book-now", `{"activityId":"act-1","quantity":0}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		api.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything)
	})
}
