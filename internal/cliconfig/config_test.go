package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/appadmin/pkg/admin"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AdminName != admin.DefaultName {
		t.Errorf("AdminName = %v, want %v", cfg.AdminName, admin.DefaultName)
	}
	if cfg.ManagementAddr != DefaultManagementAddr {
		t.Errorf("ManagementAddr = %v, want %v", cfg.ManagementAddr, DefaultManagementAddr)
	}
	if cfg.AnsiMode != "detect" {
		t.Errorf("AnsiMode = %v, want detect", cfg.AnsiMode)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing admin name",
			mutate:  func(c *Config) { c.AdminName = "" },
			wantErr: true,
		},
		{
			name:    "missing app name",
			mutate:  func(c *Config) { c.AppName = "" },
			wantErr: true,
		},
		{
			name:    "management addr without port",
			mutate:  func(c *Config) { c.ManagementAddr = "localhost" },
			wantErr: true,
		},
		{
			name:    "bad web addr",
			mutate:  func(c *Config) { c.WebAddr = "nope" },
			wantErr: true,
		},
		{
			name:   "web addr",
			mutate: func(c *Config) { c.WebAddr = ":8080" },
		},
		{
			name:    "unknown ansi mode",
			mutate:  func(c *Config) { c.AnsiMode = "sometimes" },
			wantErr: true,
		},
		{
			name:   "ansi mode is case insensitive",
			mutate: func(c *Config) { c.AnsiMode = "ALWAYS" },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: true,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "bad management url",
			mutate:  func(c *Config) { c.ManagementURL = "not a url" },
			wantErr: true,
		},
		{
			name:    "watch without properties file",
			mutate:  func(c *Config) { c.WatchProperties = true },
			wantErr: true,
		},
		{
			name: "watch with properties file",
			mutate: func(c *Config) {
				c.WatchProperties = true
				c.PropertiesFile = "/etc/app.toml"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_ManagementURL(t *testing.T) {
	tests := []struct {
		name string
		addr string
		url  string
		want string
	}{
		{name: "loopback", addr: "127.0.0.1:9000", want: "http://127.0.0.1:9000"},
		{name: "all interfaces", addr: ":9000", want: "http://127.0.0.1:9000"},
		{name: "wildcard", addr: "0.0.0.0:9000", want: "http://127.0.0.1:9000"},
		{name: "explicit url kept", addr: ":9000", url: "http://admin.internal:1234/", want: "http://admin.internal:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ManagementAddr = tt.addr
			cfg.ManagementURL = tt.url
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if cfg.ManagementURL != tt.want {
				t.Errorf("ManagementURL = %v, want %v", cfg.ManagementURL, tt.want)
			}
		})
	}
}
