// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package registry is the client for the external service-discovery
// registry. The gateway registers itself at startup, renews the lease
// with heartbeats at 75% of the TTL, and deregisters on shutdown.
//
// Registry failures translate into the same taxonomy as ERP failures.
// A 410 Gone on heartbeat or deregister means the lease already
// expired; it maps to NOT_FOUND like a 404, since the remedial action
// is identical (re-register).
package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
)

// Endpoint is the reachable address of a registered instance.
type Endpoint struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Instance is one registered service instance.
type Instance struct {
	ID          string            `json:"id"`
	ServiceName string            `json:"service_name"`
	Endpoint    Endpoint          `json:"endpoint"`
	TTL         int               `json:"ttl"`
	Status      string            `json:"status"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	LastHeard   int64             `json:"last_heartbeat,omitempty"`
}

// Registration is the lease returned by Register.
type Registration struct {
	ID  string `json:"id"`
	TTL int    `json:"ttl"`
}

// ListFilter narrows ListInstances. Zero-value fields are omitted.
type ListFilter struct {
	Fields      []string // projection of instance fields to return
	Tags        []string // require all of these tags
	ServiceName string
	Status      string // e.g. UP
}

func (f ListFilter) encode() string {
	q := url.Values{}
	if len(f.Fields) > 0 {
		q.Set("fields", strings.Join(f.Fields, ","))
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.ServiceName != "" {
		q.Set("service_name", f.ServiceName)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q.Encode()
}

// Client talks to the service registry. Safe for concurrent use.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a registry client from configuration.
func NewClient(cfg *config.RegistryConfig) *Client {
	return &Client{
		baseURL:   cfg.URL,
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register announces this instance and returns its lease. The lease
// must be renewed with Heartbeat before the TTL elapses.
func (c *Client) Register(ctx context.Context, cfg *config.RegistryConfig) (*Registration, error) {
	payload := map[string]interface{}{
		"service_name": cfg.ServiceName,
		"ttl":          int(cfg.TTL.Seconds()),
		"endpoint": Endpoint{
			Type:  cfg.Protocol,
			Value: cfg.Endpoint,
		},
	}
	if len(cfg.Tags) > 0 {
		payload["tags"] = cfg.Tags
	}

	body, err := c.do(ctx, "POST", "/api/v1/instances", payload)
	if err != nil {
		return nil, err
	}

	var reg Registration
	if err := json.Unmarshal(body, &reg); err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to decode registration: %w", err))
	}
	if reg.ID == "" {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("registration carried no instance ID"))
	}

	return &reg, nil
}

// Heartbeat renews the lease for a registered instance. NOT_FOUND
// means the lease is gone and the caller must re-register.
func (c *Client) Heartbeat(ctx context.Context, instanceID string) error {
	_, err := c.do(ctx, "PUT", "/api/v1/instances/"+url.PathEscape(instanceID)+"/heartbeat", nil)
	return err
}

// Deregister removes this instance from the registry.
func (c *Client) Deregister(ctx context.Context, instanceID string) error {
	_, err := c.do(ctx, "DELETE", "/api/v1/instances/"+url.PathEscape(instanceID), nil)
	return err
}

// ListInstances lists registered instances matching the filter.
func (c *Client) ListInstances(ctx context.Context, filter ListFilter) ([]Instance, error) {
	path := "/api/v1/instances"
	if q := filter.encode(); q != "" {
		path += "?" + q
	}

	body, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Instances []Instance `json:"instances"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to decode instance list: %w", err))
	}

	return result.Instances, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to encode request body: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apierr.Server("Server Error").WithCause(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Dependency("Service registry is unavailable.").WithCause(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Dependency("Service registry is unavailable.").WithCause(err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, apierr.Validation("Bad registry request.")
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apierr.Authentication("Registry authentication failed.")
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		// An expired lease (410) and an unknown instance (404) call for
		// the same remedy, so both collapse to NOT_FOUND.
		return nil, apierr.NotFound("Instance is not registered.")
	default:
		return nil, apierr.Server("Server Error").
			WithCause(fmt.Errorf("unexpected registry status %d", resp.StatusCode))
	}
}
