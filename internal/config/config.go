// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package config defines the gateway configuration and its koanf-based
// loader. Configuration is an explicit object constructed once at startup
// and passed to every component; no package carries ambient settings.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the gateway.
type Config struct {
	// Environment is one of dev, test, prod.
	Environment string `koanf:"environment"`

	Server   ServerConfig   `koanf:"server"`
	ERP      ERPConfig      `koanf:"erp"`
	Security SecurityConfig `koanf:"security"`
	Registry RegistryConfig `koanf:"registry"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the inbound HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed browser origins. "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs / RateLimitWindow bound requests per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// ERPConfig holds the upstream ERP connection settings.
type ERPConfig struct {
	// URL is the base URL of the ERP REST API, e.g.
	// https://erp.example.com/api/v1
	URL string `koanf:"url"`

	// Timeout bounds each upstream call. Timeouts are the only
	// cancellation mechanism for upstream work.
	Timeout time.Duration `koanf:"timeout"`

	// Breaker settings; see erp.NewClient.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds session-envelope settings.
type SecurityConfig struct {
	// Secret signs session envelopes. Rotating it invalidates every
	// outstanding token.
	Secret string `koanf:"secret"`

	// SessionTTL is the lifetime of envelopes issued by direct login.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// DemoSessionTTL is the lifetime of envelopes issued by demo login.
	DemoSessionTTL time.Duration `koanf:"demo_session_ttl"`

	// ResetTokenTTL is the lifetime of password-reset purpose tokens.
	ResetTokenTTL time.Duration `koanf:"reset_token_ttl"`

	// LoginAttempts / LoginWindow bound login attempts per client IP.
	LoginAttempts int           `koanf:"login_attempts"`
	LoginWindow   time.Duration `koanf:"login_window"`
}

// RegistryConfig holds service-discovery settings.
type RegistryConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL is the base URL of the registry, e.g. https://sd.example.com
	URL string `koanf:"url"`

	// AuthToken authenticates registry calls (Bearer token).
	AuthToken string `koanf:"auth_token"`

	// ServiceName is the name this instance registers under.
	ServiceName string `koanf:"service_name"`

	// Endpoint is the externally reachable URL of this instance.
	Endpoint string `koanf:"endpoint"`

	// Protocol of the registered endpoint (http or https).
	Protocol string `koanf:"protocol"`

	// TTL is the interval within which a heartbeat must arrive before
	// the registry expires the instance. Heartbeats are sent at 75% of
	// this value.
	TTL time.Duration `koanf:"ttl"`

	Tags []string `koanf:"tags"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch c.Environment {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("environment must be dev, test, or prod, got %q", c.Environment)
	}

	if c.Security.Secret == "" {
		return fmt.Errorf("security.secret is required")
	}
	if c.Environment == "prod" && len(c.Security.Secret) < 32 {
		return fmt.Errorf("security.secret must be at least 32 characters in prod")
	}

	if c.ERP.URL == "" {
		return fmt.Errorf("erp.url is required")
	}
	if _, err := url.Parse(c.ERP.URL); err != nil {
		return fmt.Errorf("erp.url is not a valid URL: %w", err)
	}

	if c.Registry.Enabled {
		if c.Registry.URL == "" {
			return fmt.Errorf("registry.url is required when the registry is enabled")
		}
		if c.Registry.Endpoint == "" {
			return fmt.Errorf("registry.endpoint is required when the registry is enabled")
		}
		if c.Registry.TTL < 10*time.Second {
			return fmt.Errorf("registry.ttl must be at least 10s, got %s", c.Registry.TTL)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return nil
}
