package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/futofind/futofind/internal/model"
)

type resolveRequest struct {
	Decision string `json:"decision"`
}

// PendingClaims returns all claims awaiting an administrator decision.
func (c *Client) PendingClaims(ctx context.Context) ([]model.Claim, error) {
	var claims []model.Claim
	if err := c.getJSON(ctx, "/admin/claims", nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ResolveClaim approves or rejects a claim.
func (c *Client) ResolveClaim(ctx context.Context, id, decision string) error {
	if !model.ValidDecision(decision) {
		return fmt.Errorf("resolving claim: invalid decision %q", decision)
	}
	return c.sendJSON(ctx, http.MethodPatch, "/admin/claims/"+url.PathEscape(id), resolveRequest{Decision: decision}, nil)
}
