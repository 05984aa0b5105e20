// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "VIEWD_CONFIG"

// DefaultAddress is where the display listens and the client dials
// when nothing else is configured.
const DefaultAddress = "127.0.0.1:4433"

// Config is the master configuration for viewd.
type Config struct {
	// Display configures the display process.
	Display DisplayConfig `yaml:"display"`

	// Client configures the terminal client.
	Client ClientConfig `yaml:"client"`

	// Log configures logging for both run modes.
	Log LogConfig `yaml:"log"`
}

// DisplayConfig configures the display process.
type DisplayConfig struct {
	// Bind is the TCP address to listen on.
	// Default: 127.0.0.1:4433
	Bind string `yaml:"bind"`

	// Directory holds the images to show. Required.
	Directory string `yaml:"directory"`

	// Headless runs without a window. Images are still decoded to
	// decide which ones are loadable.
	Headless bool `yaml:"headless"`

	// FrameInterval is the control loop's idle cadence, as a Go
	// duration string.
	// Default: 16ms
	FrameInterval string `yaml:"frame_interval"`

	// RotateDegrees is the rotation applied per Rotate command. Must be
	// a non-zero multiple of 90.
	// Default: 90
	RotateDegrees int `yaml:"rotate_degrees"`

	// TLS enables TLS when both files are set.
	TLS ServerTLSConfig `yaml:"tls"`
}

// ServerTLSConfig names the display's certificate.
type ServerTLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Enabled reports whether TLS is configured.
func (t ServerTLSConfig) Enabled() bool {
	return t.CertFile != "" || t.KeyFile != ""
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	// Server is the display address to dial.
	// Default: 127.0.0.1:4433
	Server string `yaml:"server"`

	// DownloadDir receives images saved with FetchBytes.
	// Default: current directory
	DownloadDir string `yaml:"download_dir"`

	// TLS configures how the display's certificate is checked.
	TLS ClientTLSConfig `yaml:"tls"`
}

// ClientTLSConfig configures client-side TLS.
type ClientTLSConfig struct {
	// Enabled turns TLS on. The other fields only apply when set.
	Enabled bool `yaml:"enabled"`

	// CAFile is a PEM bundle of trusted roots. Empty means the system
	// pool.
	CAFile string `yaml:"ca_file"`

	// ServerName overrides the name checked against the certificate.
	ServerName string `yaml:"server_name"`

	// InsecureSkipVerify disables certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Bind:          DefaultAddress,
			FrameInterval: "16ms",
			RotateDegrees: 90,
		},
		Client: ClientConfig{
			Server:      DefaultAddress,
			DownloadDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by VIEWD_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your viewd.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadOrDefault loads path if non-empty, else the file named by
// VIEWD_CONFIG if set, else returns Default().
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their Default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Display.Directory = expandVars(c.Display.Directory, vars)
	c.Display.TLS.CertFile = expandVars(c.Display.TLS.CertFile, vars)
	c.Display.TLS.KeyFile = expandVars(c.Display.TLS.KeyFile, vars)
	c.Client.DownloadDir = expandVars(c.Client.DownloadDir, vars)
	c.Client.TLS.CAFile = expandVars(c.Client.TLS.CAFile, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// FrameIntervalDuration parses Display.FrameInterval.
func (c *Config) FrameIntervalDuration() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Display.FrameInterval)
	if err != nil {
		return 0, fmt.Errorf("display.frame_interval: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("display.frame_interval must be positive, got %s", interval)
	}
	return interval, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ValidateDisplay checks the fields the display process needs.
func (c *Config) ValidateDisplay() error {
	var errs []error

	if c.Display.Bind == "" {
		errs = append(errs, fmt.Errorf("display.bind is required"))
	}
	if c.Display.Directory == "" {
		errs = append(errs, fmt.Errorf("display.directory is required"))
	}
	if _, err := c.FrameIntervalDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.Display.RotateDegrees == 0 || c.Display.RotateDegrees%90 != 0 {
		errs = append(errs, fmt.Errorf("display.rotate_degrees must be a non-zero multiple of 90, got %d", c.Display.RotateDegrees))
	}
	if (c.Display.TLS.CertFile == "") != (c.Display.TLS.KeyFile == "") {
		errs = append(errs, fmt.Errorf("display.tls.cert_file and display.tls.key_file must be set together"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateClient checks the fields the terminal client needs.
func (c *Config) ValidateClient() error {
	var errs []error

	if c.Client.Server == "" {
		errs = append(errs, fmt.Errorf("client.server is required"))
	}
	if c.Client.DownloadDir == "" {
		errs = append(errs, fmt.Errorf("client.download_dir is required"))
	}
	if !c.Client.TLS.Enabled && (c.Client.TLS.CAFile != "" || c.Client.TLS.ServerName != "" || c.Client.TLS.InsecureSkipVerify) {
		errs = append(errs, fmt.Errorf("client.tls settings given but client.tls.enabled is false"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// EnsureDownloadDir creates Client.DownloadDir if it does not exist and
// returns its absolute path.
func (c *Config) EnsureDownloadDir() (string, error) {
	directory, err := filepath.Abs(c.Client.DownloadDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", c.Client.DownloadDir, err)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", directory, err)
	}
	return directory, nil
}
