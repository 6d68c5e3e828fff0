// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"
)

// ListRetailers lists all retailers.
func (c *Client) ListRetailers(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, "list_retailers", "GET", "/Retailers", token, nil)
}

// GetRetailer fetches a retailer by ID.
func (c *Client) GetRetailer(ctx context.Context, token, retailerID string) (json.RawMessage, error) {
	return c.do(ctx, "get_retailer", "GET", "/Retailers/"+url.PathEscape(retailerID), token, nil)
}

// ListDistributionCenters lists all distribution centers.
func (c *Client) ListDistributionCenters(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, "list_distribution_centers", "GET", "/DistributionCenters", token, nil)
}

// GetDistributionCenter fetches a distribution center by ID.
func (c *Client) GetDistributionCenter(ctx context.Context, token, dcID string) (json.RawMessage, error) {
	return c.do(ctx, "get_distribution_center", "GET", "/DistributionCenters/"+url.PathEscape(dcID), token, nil)
}

// GetDistributionCenterInventory fetches the stock held at a
// distribution center.
func (c *Client) GetDistributionCenterInventory(ctx context.Context, token, dcID string) (json.RawMessage, error) {
	return c.do(ctx, "get_dc_inventory", "GET", "/DistributionCenters/"+url.PathEscape(dcID)+"/inventories", token, nil)
}
