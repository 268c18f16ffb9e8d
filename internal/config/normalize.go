package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	if err := c.normalizeJVM(); err != nil {
		return err
	}
	c.normalizeClient()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDaemon() error {
	c.Daemon.Host = strings.TrimSpace(c.Daemon.Host)
	if c.Daemon.Host == "" {
		c.Daemon.Host = defaultDaemonHost
	}
	if c.Daemon.Port == 0 {
		c.Daemon.Port = defaultDaemonPort
	}
	c.Daemon.Jar = strings.TrimSpace(c.Daemon.Jar)
	if c.Daemon.Jar != "" {
		expanded, err := expandPath(c.Daemon.Jar)
		if err != nil {
			return fmt.Errorf("daemon.jar: %w", err)
		}
		c.Daemon.Jar = expanded
	}
	return nil
}

func (c *Config) normalizeJVM() error {
	c.JVM.JavaHome = strings.TrimSpace(c.JVM.JavaHome)
	if c.JVM.JavaHome == "" {
		if value, ok := os.LookupEnv("JAVA_HOME"); ok {
			c.JVM.JavaHome = strings.TrimSpace(value)
		}
	}
	if c.JVM.JavaHome != "" {
		expanded, err := expandPath(c.JVM.JavaHome)
		if err != nil {
			return fmt.Errorf("jvm.java_home: %w", err)
		}
		c.JVM.JavaHome = expanded
	}
	options := make([]string, 0, len(c.JVM.Options))
	for _, opt := range c.JVM.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	c.JVM.Options = options
	return nil
}

func (c *Config) normalizeClient() {
	c.Client.ArgumentPolicy = strings.ToLower(strings.TrimSpace(c.Client.ArgumentPolicy))
	if c.Client.ArgumentPolicy == "" {
		c.Client.ArgumentPolicy = defaultArgumentPolicy
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
