package client

import (
	"context"
	"net/http"

	"github.com/futofind/futofind/internal/model"
)

// Notifications returns every notification of the logged-in user.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var ns []model.Notification
	if err := c.getJSON(ctx, "/notifications", nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationsRead marks all of the user's notifications read.
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPatch, "/notifications/read", nil, nil)
}
