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

// CreateUser creates a user directly in the ERP.
func (c *Client) CreateUser(ctx context.Context, token string, req *models.CreateUserRequest) (json.RawMessage, error) {
	return c.do(ctx, "create_user", "POST", "/Users", token, req)
}

// ListUsers lists all users.
func (c *Client) ListUsers(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, "list_users", "GET", "/Users", token, nil)
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, token, userID string) (json.RawMessage, error) {
	return c.do(ctx, "get_user", "GET", "/Users/"+url.PathEscape(userID), token, nil)
}

// UpdateUser replaces a user's mutable fields.
func (c *Client) UpdateUser(ctx context.Context, token, userID string, req *models.UpdateUserRequest) (json.RawMessage, error) {
	return c.do(ctx, "update_user", "PUT", "/Users/"+url.PathEscape(userID), token, req)
}
