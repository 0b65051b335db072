package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (APPADMIN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("app-name", os.Getenv("APPADMIN_APP_NAME"), &cfg.AppName)
	s.setString("admin-name", os.Getenv("APPADMIN_ADMIN_NAME"), &cfg.AdminName)
	s.setString("management-addr", os.Getenv("APPADMIN_MANAGEMENT_ADDR"), &cfg.ManagementAddr)
	s.setString("url", os.Getenv("APPADMIN_MANAGEMENT_URL"), &cfg.ManagementURL)
	s.setString("web-addr", os.Getenv("APPADMIN_WEB_ADDR"), &cfg.WebAddr)
	s.setString("properties", os.Getenv("APPADMIN_PROPERTIES_FILE"), &cfg.PropertiesFile)
	s.setString("ansi", os.Getenv("APPADMIN_ANSI"), &cfg.AnsiMode)
	s.setString("log-level", os.Getenv("APPADMIN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", os.Getenv("APPADMIN_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("wait-timeout", os.Getenv("APPADMIN_WAIT_TIMEOUT"), &cfg.WaitTimeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("APPADMIN_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("APPADMIN_WATCH_PROPERTIES"), &cfg.WatchProperties)
	return nil
}
