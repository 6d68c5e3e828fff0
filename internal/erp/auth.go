// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// LoginResult is the ERP's login response: the session record plus the
// user it belongs to.
type LoginResult struct {
	Token models.ERPSession `json:"token"`
	User  models.User       `json:"user"`
}

// Login authenticates a user against the ERP and returns the session
// token with the user snapshot.
func (c *Client) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	body, err := c.do(ctx, "login", "POST", "/Users/login?include=user", "", map[string]string{
		"userId":   userID,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to decode login response: %w", err))
	}
	if result.Token.ID == "" {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("login response carried no session token"))
	}

	return &result, nil
}

// Logout invalidates an ERP session. The envelope the client holds
// stays decodable until it expires; logout only kills the upstream
// session behind it.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, "logout", "POST", "/Users/logout", token, nil)
	return err
}

// SetPassword changes a user's password. Used by the password-reset
// confirmation flow after the reset token has been verified.
func (c *Client) SetPassword(ctx context.Context, token, userID, newPassword string) error {
	_, err := c.do(ctx, "set_password", "PATCH", "/Users/"+userID, token, map[string]string{
		"password": newPassword,
	})
	return err
}
