package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	if err := c.validateJVM(); err != nil {
		return err
	}
	if err := c.validateClient(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if c.Daemon.Port < 1 || c.Daemon.Port > 65535 {
		return fmt.Errorf("daemon.port must be between 1 and 65535, got %d", c.Daemon.Port)
	}
	if c.Daemon.ConnectTimeoutSeconds < 0 {
		return errors.New("daemon.connect_timeout_seconds must not be negative")
	}
	if c.Daemon.IOTimeoutSeconds < 0 {
		return errors.New("daemon.io_timeout_seconds must not be negative")
	}
	if c.Daemon.StartupTimeoutSeconds < 1 {
		return errors.New("daemon.startup_timeout_seconds must be at least 1")
	}
	return nil
}

func (c *Config) validateJVM() error {
	if c.JVM.MinHeapMB < 1 {
		return errors.New("jvm.min_heap_mb must be at least 1")
	}
	if c.JVM.MaxHeapMB < c.JVM.MinHeapMB {
		return fmt.Errorf("jvm.max_heap_mb (%d) must not be below jvm.min_heap_mb (%d)", c.JVM.MaxHeapMB, c.JVM.MinHeapMB)
	}
	return nil
}

func (c *Config) validateClient() error {
	switch c.Client.ArgumentPolicy {
	case "filter", "passthrough":
		return nil
	default:
		return fmt.Errorf("client.argument_policy must be \"filter\" or \"passthrough\", got %q", c.Client.ArgumentPolicy)
	}
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.MaxEntries < 1 {
		return errors.New("history.max_entries must be at least 1 when history is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
}
