// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"

	"github.com/goccy/go-json"
)

// ListProducts lists the product catalog.
func (c *Client) ListProducts(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, "list_products", "GET", "/Products", token, nil)
}
