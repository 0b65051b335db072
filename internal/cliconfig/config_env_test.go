package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"APPADMIN_APP_NAME":         "env-app",
				"APPADMIN_MANAGEMENT_ADDR":  ":9999",
				"APPADMIN_SHUTDOWN_TIMEOUT": "10s",
				"APPADMIN_ANSI":             "never",
				"APPADMIN_WATCH_PROPERTIES": "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				AppName:         "env-app",
				ManagementAddr:  ":9999",
				ShutdownTimeout: 10 * time.Second,
				AnsiMode:        "never",
				WatchProperties: true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"APPADMIN_APP_NAME":  "env-app",
				"APPADMIN_LOG_LEVEL": "debug",
			},
			changed: map[string]bool{"app-name": true},
			initial: Config{AppName: "flag-app"},
			expected: Config{
				AppName:  "flag-app",
				LogLevel: "debug",
			},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"APPADMIN_WAIT_TIMEOUT": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"APPADMIN_WATCH_PROPERTIES": "1",
			},
			changed:  map[string]bool{},
			expected: Config{WatchProperties: true},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"APPADMIN_WATCH_PROPERTIES": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{WatchProperties: true},
			expected: Config{WatchProperties: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File > default)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		AppName:         "file-app",
		AdminName:       "file:type=Admin",
		WebAddr:         ":7000",
		WatchProperties: &trueVal,
	}

	t.Setenv("APPADMIN_APP_NAME", "env-app")
	t.Setenv("APPADMIN_ADMIN_NAME", "env:type=Admin")

	// CLI flag was set for admin-name
	changed := map[string]bool{"admin-name": true}

	cfg := DefaultConfig()
	cfg.AdminName = "cli:type=Admin"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.AdminName != "cli:type=Admin" {
		t.Errorf("AdminName = %v, want cli:type=Admin (CLI should win)", cfg.AdminName)
	}
	if cfg.AppName != "env-app" {
		t.Errorf("AppName = %v, want env-app (env should override file)", cfg.AppName)
	}
	if cfg.WebAddr != ":7000" {
		t.Errorf("WebAddr = %v, want :7000 (file should set)", cfg.WebAddr)
	}
	if !cfg.WatchProperties {
		t.Error("WatchProperties = false, want true (file should set)")
	}
	if cfg.ManagementAddr != DefaultManagementAddr {
		t.Errorf("ManagementAddr = %v, want default %v", cfg.ManagementAddr, DefaultManagementAddr)
	}
}
