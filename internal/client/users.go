package client

import (
	"context"

	"github.com/futofind/futofind/internal/model"
)

// MyItems returns the items reported by the logged-in user.
func (c *Client) MyItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.getJSON(ctx, "/users/my-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MyClaims returns the claims made by the logged-in user.
func (c *Client) MyClaims(ctx context.Context) ([]model.Claim, error) {
	var claims []model.Claim
	if err := c.getJSON(ctx, "/users/my-claims", nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}
