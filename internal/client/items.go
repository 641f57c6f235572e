package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/futofind/futofind/internal/model"
)

// ReportInput is the payload of an item report.
type ReportInput struct {
	ReportType  string
	Title       string
	Description string
	Category    string
	Location    string
	Date        string
	Image       *Upload
}

// Filters narrows the found-item listing.
type Filters struct {
	Keyword  string
	Category string
}

// Query encodes the filters; empty values and the "All" category are omitted.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	if f.Category != "" && f.Category != model.CategoryAll {
		q.Set("category", f.Category)
	}
	return q
}

// ClaimInput is the payload of a claim submission.
type ClaimInput struct {
	Justification string
	ProofImage    *Upload
}

// ReportItem submits a lost or found item report as multipart form data.
func (c *Client) ReportItem(ctx context.Context, in ReportInput) (*model.Item, error) {
	body, contentType, err := encodeMultipart([]formField{
		{"reportType", in.ReportType},
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"location", in.Location},
		{"date", in.Date},
	}, "image", in.Image)
	if err != nil {
		return nil, err
	}

	var item model.Item
	err = c.do(ctx, request{method: http.MethodPost, path: "/items", body: body, contentType: contentType}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListFoundItems returns found items matching the filters.
func (c *Client) ListFoundItems(ctx context.Context, f Filters) ([]model.Item, error) {
	var items []model.Item
	if err := c.getJSON(ctx, "/items", f.Query(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns an item by ID, or nil if the backend does not know it.
func (c *Client) GetItem(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := c.getJSON(ctx, "/items/"+url.PathEscape(id), nil, &item)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ClaimItem submits an ownership claim for item id as multipart form data.
func (c *Client) ClaimItem(ctx context.Context, id string, in ClaimInput) (*model.Claim, error) {
	if id == "" {
		return nil, fmt.Errorf("claiming item: empty item id")
	}
	body, contentType, err := encodeMultipart([]formField{
		{"justification", in.Justification},
	}, "proofImage", in.ProofImage)
	if err != nil {
		return nil, err
	}

	var claim model.Claim
	path := "/items/" + url.PathEscape(id) + "/claim"
	err = c.do(ctx, request{method: http.MethodPost, path: path, body: body, contentType: contentType}, &claim)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}
