package services

import (
	"context"
	"net/http"
	"net/url"

	"travel-storefront/internal/models"
)

func (c *APIClient) GetActivities(ctx context.Context) Result[[]models.Activity] {
	return do[[]models.Activity](ctx, c, http.MethodGet, "/activities", nil, "Failed to fetch activities")
}

func (c *APIClient) GetActivity(ctx context.Context, id string) Result[models.Activity] {
	return do[models.Activity](ctx, c, http.MethodGet, "/activity/"+url.PathEscape(id), nil, "Failed to fetch activity")
}

func (c *APIClient) GetActivitiesByCategory(ctx context.Context, categoryID string) Result[[]models.Activity] {
	return do[[]models.Activity](ctx, c, http.MethodGet, "/activities-by-category/"+url.PathEscape(categoryID), nil, "Failed to fetch activities")
}

func (c *APIClient) GetCategories(ctx context.Context) Result[[]models.Category] {
	return do[[]models.Category](ctx, c, http.MethodGet, "/categories", nil, "Failed to fetch categories")
}

func (c *APIClient) GetPromos(ctx context.Context) Result[[]models.Promo] {
	return do[[]models.Promo](ctx, c, http.MethodGet, "/promos", nil, "Failed to fetch promos")
}

func (c *APIClient) GetBanners(ctx context.Context) Result[[]models.Banner] {
	return do[[]models.Banner](ctx, c, http.MethodGet, "/banners", nil, "Failed to fetch banners")
}
