// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// CreateDemo provisions a new demo environment. The ERP seeds it with
// generated users, retailers, and shipments and answers with the full
// demo record.
func (c *Client) CreateDemo(ctx context.Context, name, email string) (json.RawMessage, error) {
	payload := map[string]string{"name": name}
	if email != "" {
		payload["email"] = email
	}
	return c.do(ctx, "create_demo", "POST", "/Demos", "", payload)
}

// GetDemo fetches a demo by its GUID.
func (c *Client) GetDemo(ctx context.Context, guid string) (json.RawMessage, error) {
	return c.do(ctx, "get_demo", "GET", "/Demos/findByGuid/"+url.PathEscape(guid), "", nil)
}

// DeleteDemo tears a demo down, cascading to its generated users.
func (c *Client) DeleteDemo(ctx context.Context, guid string) error {
	_, err := c.do(ctx, "delete_demo", "DELETE", "/Demos/"+url.PathEscape(guid), "", nil)
	return err
}

// ListDemoRetailers lists the retailers seeded into a demo.
func (c *Client) ListDemoRetailers(ctx context.Context, guid string) (json.RawMessage, error) {
	return c.do(ctx, "list_demo_retailers", "GET", "/Demos/findByGuid/"+url.PathEscape(guid)+"/retailers", "", nil)
}

// CreateDemoUser adds a retailer-scoped user to a demo and returns the
// new user record.
func (c *Client) CreateDemoUser(ctx context.Context, guid, retailerID string) (json.RawMessage, error) {
	return c.do(ctx, "create_demo_user", "POST", "/Demos/"+url.PathEscape(guid)+"/users", "", map[string]string{
		"retailerId": retailerID,
	})
}

// GetDemoUser fetches one of a demo's generated users.
func (c *Client) GetDemoUser(ctx context.Context, guid, userID string) (json.RawMessage, error) {
	return c.do(ctx, "get_demo_user", "GET", "/Demos/"+url.PathEscape(guid)+"/users/"+url.PathEscape(userID), "", nil)
}

// LoginDemoUser logs in as one of a demo's generated users without a
// password. The demo GUID is the credential.
func (c *Client) LoginDemoUser(ctx context.Context, guid, userID string) (*LoginResult, error) {
	body, err := c.do(ctx, "demo_login", "POST", "/Demos/"+url.PathEscape(guid)+"/loginUser", "", map[string]string{
		"userId": userID,
	})
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to decode demo login response: %w", err))
	}
	if result.Token.ID == "" {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("demo login response carried no session token"))
	}

	return &result, nil
}

// DemoFromBody decodes a demo record from a passthrough body. Used when
// the gateway needs the GUID or user list of a demo it just proxied.
func DemoFromBody(body json.RawMessage) (*models.Demo, error) {
	var demo models.Demo
	if err := json.Unmarshal(body, &demo); err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to decode demo record: %w", err))
	}
	return &demo, nil
}
