// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/models"
)

// ListShipments lists shipments, narrowed by the filter when any of its
// predicates is set.
func (c *Client) ListShipments(ctx context.Context, token string, filter ShipmentFilter) (json.RawMessage, error) {
	path := "/Shipments"
	if q := filter.Encode(); q != "" {
		path += "?" + q
	}
	return c.do(ctx, "list_shipments", "GET", path, token, nil)
}

// GetShipment fetches a shipment by ID.
func (c *Client) GetShipment(ctx context.Context, token, shipmentID string) (json.RawMessage, error) {
	return c.do(ctx, "get_shipment", "GET", "/Shipments/"+url.PathEscape(shipmentID), token, nil)
}

// GetShipmentItems fetches a shipment's line items.
func (c *Client) GetShipmentItems(ctx context.Context, token, shipmentID string) (json.RawMessage, error) {
	return c.do(ctx, "get_shipment_items", "GET", "/Shipments/"+url.PathEscape(shipmentID)+"/items", token, nil)
}

// CreateShipment creates a shipment. The ERP validates referential
// integrity and answers 422 for unknown fromId/toId references.
func (c *Client) CreateShipment(ctx context.Context, token string, req *models.CreateShipmentRequest) (json.RawMessage, error) {
	return c.do(ctx, "create_shipment", "POST", "/Shipments", token, req)
}

// UpdateShipment replaces a shipment. The body is forwarded untouched
// so clients can use any representation the ERP accepts.
func (c *Client) UpdateShipment(ctx context.Context, token, shipmentID string, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, "update_shipment", "PUT", "/Shipments/"+url.PathEscape(shipmentID), token, body)
}

// DeleteShipment deletes a shipment.
func (c *Client) DeleteShipment(ctx context.Context, token, shipmentID string) error {
	_, err := c.do(ctx, "delete_shipment", "DELETE", "/Shipments/"+url.PathEscape(shipmentID), token, nil)
	return err
}
