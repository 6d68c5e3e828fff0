// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.Secret = "test-secret"
	cfg.ERP.URL = "http://erp.local/api/v1"
	return cfg
}

func TestDefaultsAreValidWithRequiredFields(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if cfg.Security.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %s, want 24h", cfg.Security.SessionTTL)
	}
	if cfg.Security.DemoSessionTTL != 14*24*time.Hour {
		t.Errorf("DemoSessionTTL = %s, want 336h", cfg.Security.DemoSessionTTL)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.Security.Secret = "" },
			wantSub: "security.secret",
		},
		{
			name:    "missing ERP URL",
			mutate:  func(c *Config) { c.ERP.URL = "" },
			wantSub: "erp.url",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Environment = "staging" },
			wantSub: "environment",
		},
		{
			name: "short secret in prod",
			mutate: func(c *Config) {
				c.Environment = "prod"
				c.Security.Secret = "short"
			},
			wantSub: "32 characters",
		},
		{
			name: "registry enabled without URL",
			mutate: func(c *Config) {
				c.Registry.Enabled = true
				c.Registry.Endpoint = "http://me.local:8080"
			},
			wantSub: "registry.url",
		},
		{
			name: "registry TTL too small",
			mutate: func(c *Config) {
				c.Registry.Enabled = true
				c.Registry.URL = "http://sd.local"
				c.Registry.Endpoint = "http://me.local:8080"
				c.Registry.TTL = time.Second
			},
			wantSub: "registry.ttl",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantSub: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONVEYOR_SECURITY__SECRET", "env-secret")
	t.Setenv("CONVEYOR_ERP__URL", "http://erp.test/api/v1")
	t.Setenv("CONVEYOR_SERVER__PORT", "9090")
	t.Setenv("CONVEYOR_ENVIRONMENT", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Security.Secret != "env-secret" {
		t.Errorf("Secret = %q, want env override", cfg.Security.Secret)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Environment != "test" {
		t.Errorf("Environment = %q, want test", cfg.Environment)
	}
	// Untouched settings keep their defaults.
	if cfg.ERP.Timeout != 30*time.Second {
		t.Errorf("ERP.Timeout = %s, want default 30s", cfg.ERP.Timeout)
	}
}
