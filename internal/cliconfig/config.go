package cliconfig

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/appadmin/pkg/admin"
)

// DefaultManagementAddr is where the management endpoint listens by default.
const DefaultManagementAddr = "127.0.0.1:9464"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds CLI configuration for appadmin.
type Config struct {
	AppName   string `validate:"required"`
	AdminName string `validate:"required"`

	ManagementAddr string `validate:"required"`
	ManagementURL  string `validate:"omitempty,url"`
	WebAddr        string

	PropertiesFile  string
	WatchProperties bool

	AnsiMode string `validate:"oneof=detect always never"`
	LogLevel string `validate:"oneof=debug info warn error"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
	WaitTimeout     time.Duration `validate:"gte=0"`
	PollInterval    time.Duration `validate:"gt=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AppName:         "application",
		AdminName:       admin.DefaultName,
		ManagementAddr:  DefaultManagementAddr,
		AnsiMode:        "detect",
		LogLevel:        "info",
		ShutdownTimeout: 30 * time.Second,
		WaitTimeout:     time.Minute,
		PollInterval:    200 * time.Millisecond,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.AnsiMode = strings.ToLower(c.AnsiMode)
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := checkAddr("management-addr", c.ManagementAddr); err != nil {
		return err
	}
	if c.WebAddr != "" {
		if err := checkAddr("web-addr", c.WebAddr); err != nil {
			return err
		}
	}

	if c.ManagementURL == "" {
		host, port, _ := net.SplitHostPort(c.ManagementAddr)
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
		}
		c.ManagementURL = "http://" + net.JoinHostPort(host, port)
	}
	// Ensure no trailing slash
	c.ManagementURL = strings.TrimRight(c.ManagementURL, "/")

	if c.WatchProperties && c.PropertiesFile == "" {
		return fmt.Errorf("%w: watch requires a properties file", ErrInvalidConfig)
	}
	return nil
}

func checkAddr(flag, addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, flag, err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
