// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/conveyor-labs/conveyor/internal/apierr"
	"github.com/conveyor-labs/conveyor/internal/config"
	"github.com/conveyor-labs/conveyor/internal/logging"
	"github.com/conveyor-labs/conveyor/internal/metrics"
)

// Heartbeater keeps this instance's registry lease alive. It implements
// suture.Service: Serve registers the instance, renews the lease at 75%
// of the TTL, and deregisters on shutdown. When the registry reports
// the lease gone, Serve returns an error so the supervisor restarts it
// and the instance re-registers from scratch.
type Heartbeater struct {
	client *Client
	cfg    *config.RegistryConfig
	name   string
}

// NewHeartbeater creates a supervised heartbeat service.
func NewHeartbeater(client *Client, cfg *config.RegistryConfig) *Heartbeater {
	return &Heartbeater{
		client: client,
		cfg:    cfg,
		name:   "registry-heartbeater",
	}
}

// heartbeatInterval renews at 75% of the TTL, leaving a quarter of the
// lease as slack for slow registry round-trips.
func (h *Heartbeater) heartbeatInterval() time.Duration {
	return h.cfg.TTL * 3 / 4
}

// Serve implements suture.Service.
func (h *Heartbeater) Serve(ctx context.Context) error {
	reg, err := h.client.Register(ctx, h.cfg)
	if err != nil {
		return fmt.Errorf("registry registration failed: %w", err)
	}

	logging.Info().
		Str("instance_id", reg.ID).
		Str("service_name", h.cfg.ServiceName).
		Dur("interval", h.heartbeatInterval()).
		Msg("Registered with service registry")

	ticker := time.NewTicker(h.heartbeatInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.deregister(reg.ID)
			return ctx.Err()

		case <-ticker.C:
			err := h.client.Heartbeat(ctx, reg.ID)
			switch {
			case err == nil:
				metrics.RegistryHeartbeats.WithLabelValues("ok").Inc()

			case apierr.IsKind(err, apierr.KindNotFound):
				// Lease expired behind our back. Restarting the
				// service re-registers with a fresh lease.
				metrics.RegistryHeartbeats.WithLabelValues("gone").Inc()
				logging.Warn().Str("instance_id", reg.ID).Msg("Registry lease expired, re-registering")
				return fmt.Errorf("registry lease %s expired: %w", reg.ID, err)

			default:
				// Transient failure. Keep the loop alive; the lease
				// survives as long as one heartbeat lands per TTL.
				metrics.RegistryHeartbeats.WithLabelValues("error").Inc()
				logging.Warn().Err(err).Str("instance_id", reg.ID).Msg("Registry heartbeat failed")
			}
		}
	}
}

// deregister removes the lease on shutdown. Best effort: the TTL will
// reap the instance anyway if this fails.
func (h *Heartbeater) deregister(instanceID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.client.Deregister(ctx, instanceID); err != nil {
		logging.Warn().Err(err).Str("instance_id", instanceID).Msg("Registry deregistration failed")
		return
	}
	logging.Info().Str("instance_id", instanceID).Msg("Deregistered from service registry")
}

// String implements fmt.Stringer for supervisor logging.
func (h *Heartbeater) String() string {
	return h.name
}
