// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package erp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/models"
)

// newTestClient wires a client to a stub upstream. The breaker minimum
// is raised so individual test failures never trip it.
func newTestClient(upstream *httptest.Server) *Client {
	return NewClient(&config.ERPConfig{
		URL:                 upstream.URL,
		Timeout:             5 * time.Second,
		BreakerMinRequests:  1000,
		BreakerFailureRatio: 0.6,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
	})
}

func stubStatus(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatusTranslation(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   apierr.Kind
		wantStatus int
	}{
		{"400 becomes validation", http.StatusBadRequest, `{}`, apierr.KindValidation, 400},
		{"401 becomes authentication", http.StatusUnauthorized, `{}`, apierr.KindAuthentication, 401},
		{"404 becomes not found", http.StatusNotFound, `{}`, apierr.KindNotFound, 404},
		{"422 becomes unprocessable", http.StatusUnprocessableEntity, `{}`, apierr.KindUnprocessable, 422},
		{"500 becomes server error", http.StatusInternalServerError, `{}`, apierr.KindServer, 500},
		{"503 becomes server error", http.StatusServiceUnavailable, `{}`, apierr.KindServer, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(stubStatus(t, tt.status, tt.body))

			_, err := client.GetShipment(context.Background(), "tok", "S1")
			if err == nil {
				t.Fatal("GetShipment() = nil error, want translated failure")
			}
			apiErr := apierr.From(err)
			if apiErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
		})
	}
}

func TestUpstreamErrorMessageBecomesUserDetails(t *testing.T) {
	client := newTestClient(stubStatus(t, http.StatusUnprocessableEntity,
		`{"error": {"message": "unknown retailer R9"}}`))

	_, err := client.CreateShipment(context.Background(), "tok", &models.CreateShipmentRequest{
		FromID: "D1", ToID: "R9",
	})
	apiErr := apierr.From(err)
	if apiErr.Kind != apierr.KindUnprocessable {
		t.Fatalf("Kind = %q, want UNPROCESSABLE_ENTITY", apiErr.Kind)
	}
	if apiErr.UserMessage() != "unknown retailer R9" {
		t.Errorf("UserMessage() = %q, want upstream message", apiErr.UserMessage())
	}
}

func TestTransportFailureBecomesDependency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := newTestClient(srv)
	_, err := client.ListRetailers(context.Background(), "tok")
	if !apierr.IsKind(err, apierr.KindDependency) {
		t.Fatalf("ListRetailers() against dead upstream = %v, want DEPENDENCY_ERROR", err)
	}
}

func TestTokenForwardedInAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv)
	if _, err := client.ListProducts(context.Background(), "T1"); err != nil {
		t.Fatalf("ListProducts() = %v", err)
	}
	if gotAuth != "T1" {
		t.Errorf("Authorization header = %q, want T1", gotAuth)
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": {"id": "T1"}, "user": {"id": "U1", "username": "chris"}}`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv)
	result, err := client.Login(context.Background(), "chris@company.com", "secret")
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}
	if gotPath != "/Users/login" {
		t.Errorf("path = %q, want /Users/login", gotPath)
	}
	if result.Token.ID != "T1" {
		t.Errorf("Token.ID = %q, want T1", result.Token.ID)
	}
	if result.User.ID != "U1" || result.User.Username != "chris" {
		t.Errorf("User = %+v, want id U1 username chris", result.User)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := newTestClient(stubStatus(t, http.StatusUnauthorized, `{}`))

	_, err := client.Login(context.Background(), "chris@company.com", "wrong")
	if !apierr.IsKind(err, apierr.KindAuthentication) {
		t.Fatalf("Login() = %v, want AUTHENTICATION_ERROR", err)
	}
}

func TestLoginResponseWithoutTokenIsServerError(t *testing.T) {
	client := newTestClient(stubStatus(t, http.StatusOK, `{"user": {"id": "U1"}}`))

	_, err := client.Login(context.Background(), "chris@company.com", "secret")
	if !apierr.IsKind(err, apierr.KindServer) {
		t.Fatalf("Login() = %v, want SERVER_ERROR", err)
	}
}

func TestListShipmentsAppendsFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv)

	if _, err := client.ListShipments(context.Background(), "tok", ShipmentFilter{}); err != nil {
		t.Fatalf("ListShipments(empty) = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query for empty filter = %q, want empty", gotQuery)
	}

	filter := ShipmentFilter{Status: "SHIPPED", FromID: "D1", ToID: "R1"}
	if _, err := client.ListShipments(context.Background(), "tok", filter); err != nil {
		t.Fatalf("ListShipments(filtered) = %v", err)
	}
	want := "filter[where][status]=SHIPPED&filter[where][fromId]=D1&filter[where][toId]=R1"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestPassthroughBodyIsVerbatim(t *testing.T) {
	const body = `[{"id":"S1","status":"SHIPPED","weird_field":42}]`
	client := newTestClient(stubStatus(t, http.StatusOK, body))

	got, err := client.ListShipments(context.Background(), "tok", ShipmentFilter{})
	if err != nil {
		t.Fatalf("ListShipments() = %v", err)
	}
	if string(got) != body {
		t.Errorf("body = %s, want verbatim upstream payload", got)
	}
}

func TestDemoFromBody(t *testing.T) {
	demo, err := DemoFromBody([]byte(`{"id":"1","guid":"abc","users":[{"id":"U1"}]}`))
	if err != nil {
		t.Fatalf("DemoFromBody() = %v", err)
	}
	if demo.GUID != "abc" || len(demo.Users) != 1 {
		t.Errorf("demo = %+v, want guid abc with one user", demo)
	}

	if _, err := DemoFromBody([]byte(`{`)); !apierr.IsKind(err, apierr.KindServer) {
		t.Errorf("DemoFromBody(malformed) = %v, want SERVER_ERROR", err)
	}
}
