package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	AppName         string `toml:"app_name"`
	AdminName       string `toml:"admin_name"`
	ManagementAddr  string `toml:"management_addr"`
	ManagementURL   string `toml:"management_url"`
	WebAddr         string `toml:"web_addr"`
	PropertiesFile  string `toml:"properties_file"`
	WatchProperties *bool  `toml:"watch_properties"`
	AnsiMode        string `toml:"ansi"`
	LogLevel        string `toml:"log_level"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	WaitTimeout     string `toml:"wait_timeout"`
	PollInterval    string `toml:"poll_interval"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.appadmin/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".appadmin", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-name", fc.AppName, &cfg.AppName)
	s.setString("admin-name", fc.AdminName, &cfg.AdminName)
	s.setString("management-addr", fc.ManagementAddr, &cfg.ManagementAddr)
	s.setString("url", fc.ManagementURL, &cfg.ManagementURL)
	s.setString("web-addr", fc.WebAddr, &cfg.WebAddr)
	s.setString("properties", fc.PropertiesFile, &cfg.PropertiesFile)
	s.setString("ansi", fc.AnsiMode, &cfg.AnsiMode)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("wait-timeout", fc.WaitTimeout, &cfg.WaitTimeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setBool("watch", fc.WatchProperties, &cfg.WatchProperties)
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
