// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package authz

import (
	"testing"

	"github.com/conveyor-labs/conveyor/internal/apierr"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	g, err := NewGuard()
	if err != nil {
		t.Fatalf("NewGuard() = %v", err)
	}
	return g
}

func TestGuardDecisions(t *testing.T) {
	g := newTestGuard(t)

	tests := []struct {
		name   string
		role   string
		object string
		action string
		want   bool
	}{
		{"supply chain manager lists users", "supplychainmanager", "/users", "list", true},
		{"supply chain manager creates users", "supplychainmanager", "/users", "create", true},
		{"supply chain manager reads dashboard", "supplychainmanager", "/admin/data", "read", true},
		{"retail store manager cannot list users", "retailstoremanager", "/users", "list", false},
		{"retail store manager cannot read dashboard", "retailstoremanager", "/admin/data", "read", false},
		{"unknown role denied", "intruder", "/users", "list", false},
		{"empty role denied", "", "/users", "list", false},
		{"admin inherits supply chain grants", "admin", "/users", "create", true},
		{"path parameter matches policy pattern", "supplychainmanager", "/users/U1", "update", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Allow(tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Allow() = %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow(%q, %q, %q) = %v, want %v", tt.role, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestRequireDeniedIsAuthorizationError(t *testing.T) {
	g := newTestGuard(t)

	err := g.Require("retailstoremanager", "/users", "list")
	if !apierr.IsKind(err, apierr.KindAuthorization) {
		t.Fatalf("Require() = %v, want AUTHORIZATION_ERROR", err)
	}
	if apierr.From(err).Status != 401 {
		t.Errorf("Status = %d, want 401", apierr.From(err).Status)
	}
}

func TestRequireAllowedIsNil(t *testing.T) {
	g := newTestGuard(t)

	if err := g.Require("supplychainmanager", "/users", "create"); err != nil {
		t.Fatalf("Require() = %v, want nil", err)
	}
}
