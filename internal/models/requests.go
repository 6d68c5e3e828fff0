// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package models

import "github.com/goccy/go-json"

// Request bodies accepted by the gateway. Validation tags are enforced by
// internal/validation before any upstream call is attempted.

// LoginRequest authenticates a user directly against the ERP.
type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DemoLoginRequest logs in to a demo as one of its generated users.
type DemoLoginRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// CreateDemoRequest provisions a new demo session.
type CreateDemoRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateDemoUserRequest adds a retailer-scoped user to a demo.
type CreateDemoUserRequest struct {
	RetailerID string `json:"retailerId" validate:"required"`
}

// CreateUserRequest creates a user directly in the ERP.
type CreateUserRequest struct {
	ID       string `json:"id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a full or partial user representation; the
// body is forwarded to the ERP, which owns field-level semantics.
type UpdateUserRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Role  string `json:"role,omitempty"`
}

// CreateShipmentRequest creates a shipment. The ERP validates referential
// integrity (fromId/toId) and answers 422 for bad references.
type CreateShipmentRequest struct {
	Status                 string     `json:"status,omitempty"`
	EstimatedTimeOfArrival string     `json:"estimatedTimeOfArrival,omitempty"`
	FromID                 string     `json:"fromId" validate:"required"`
	ToID                   string     `json:"toId" validate:"required"`
	Items                  []LineItem `json:"items,omitempty"`
}

// PasswordResetRequest asks for a single-purpose reset token.
type PasswordResetRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// PasswordResetConfirm consumes a reset token and sets a new password.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// TokenResponse returns a freshly issued session envelope.
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse is the root health payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// AdminData aggregates the dashboard fan-out. The three payloads are ERP
// response bodies passed through untouched.
type AdminData struct {
	Shipments           json.RawMessage `json:"shipments"`
	Retailers           json.RawMessage `json:"retailers"`
	DistributionCenters json.RawMessage `json:"distribution-centers"`
}
