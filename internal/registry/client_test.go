// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
)

func testRegistryConfig(baseURL string) *config.RegistryConfig {
	return &config.RegistryConfig{
		Enabled:     true,
		URL:         baseURL,
		AuthToken:   "sd-token",
		ServiceName: "conveyor-controller",
		Endpoint:    "http://controller.local:8080",
		Protocol:    "http",
		TTL:         5 * time.Minute,
		Tags:        []string{"logistics"},
	}
}

func TestRegisterSendsLeaseRequest(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		decodeJSONBody(t, r, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "inst-1", "ttl": 300}`))
	}))
	t.Cleanup(srv.Close)

	cfg := testRegistryConfig(srv.URL)
	reg, err := NewClient(cfg).Register(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}
	if reg.ID != "inst-1" || reg.TTL != 300 {
		t.Errorf("Registration = %+v, want id inst-1 ttl 300", reg)
	}
	if gotAuth != "Bearer sd-token" {
		t.Errorf("Authorization = %q, want Bearer sd-token", gotAuth)
	}
	if gotPath != "/api/v1/instances" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["service_name"] != "conveyor-controller" {
		t.Errorf("service_name = %v", gotBody["service_name"])
	}
	if gotBody["ttl"] != float64(300) {
		t.Errorf("ttl = %v, want 300", gotBody["ttl"])
	}
}

func TestHeartbeatGoneMapsToNotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"404 not found", http.StatusNotFound},
		{"410 gone", http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			err := NewClient(testRegistryConfig(srv.URL)).Heartbeat(context.Background(), "inst-1")
			if !apierr.IsKind(err, apierr.KindNotFound) {
				t.Fatalf("Heartbeat() = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestHeartbeatUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	err := NewClient(testRegistryConfig(srv.URL)).Heartbeat(context.Background(), "inst-1")
	if !apierr.IsKind(err, apierr.KindAuthentication) {
		t.Fatalf("Heartbeat() = %v, want AUTHENTICATION_ERROR", err)
	}
}

func TestDeregisterHitsInstancePath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	if err := NewClient(testRegistryConfig(srv.URL)).Deregister(context.Background(), "inst-1"); err != nil {
		t.Fatalf("Deregister() = %v", err)
	}
	if gotMethod != "DELETE" || gotPath != "/api/v1/instances/inst-1" {
		t.Errorf("request = %s %s, want DELETE /api/v1/instances/inst-1", gotMethod, gotPath)
	}
}

func TestListInstancesEncodesFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"instances": [{"id": "inst-1", "service_name": "lw-erp", "status": "UP"}]}`))
	}))
	t.Cleanup(srv.Close)

	instances, err := NewClient(testRegistryConfig(srv.URL)).ListInstances(context.Background(), ListFilter{
		Fields:      []string{"id", "endpoint"},
		Tags:        []string{"logistics", "erp"},
		ServiceName: "lw-erp",
		Status:      "UP",
	})
	if err != nil {
		t.Fatalf("ListInstances() = %v", err)
	}
	if len(instances) != 1 || instances[0].ID != "inst-1" {
		t.Errorf("instances = %+v", instances)
	}

	// url.Values encodes in sorted key order.
	want := "fields=id%2Cendpoint&service_name=lw-erp&status=UP&tags=logistics%2Cerp"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestListInstancesEmptyFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"instances": []}`))
	}))
	t.Cleanup(srv.Close)

	if _, err := NewClient(testRegistryConfig(srv.URL)).ListInstances(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("ListInstances() = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestRegistryUnreachableIsDependency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewClient(testRegistryConfig(srv.URL)).Heartbeat(context.Background(), "inst-1")
	if !apierr.IsKind(err, apierr.KindDependency) {
		t.Fatalf("Heartbeat() against dead registry = %v, want DEPENDENCY_ERROR", err)
	}
}

func TestHeartbeaterInterval(t *testing.T) {
	h := NewHeartbeater(nil, &config.RegistryConfig{TTL: 4 * time.Minute})
	if got := h.heartbeatInterval(); got != 3*time.Minute {
		t.Errorf("heartbeatInterval() = %s, want 3m", got)
	}
}

func decodeJSONBody(t *testing.T, r *http.Request, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}
