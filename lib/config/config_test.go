// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "viewd.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Bind != DefaultAddress {
		t.Errorf("expected bind=%s, got %s", DefaultAddress, cfg.Display.Bind)
	}
	if cfg.Client.Server != DefaultAddress {
		t.Errorf("expected server=%s, got %s", DefaultAddress, cfg.Client.Server)
	}
	if cfg.Display.RotateDegrees != 90 {
		t.Errorf("expected rotate_degrees=90, got %d", cfg.Display.RotateDegrees)
	}

	interval, err := cfg.FrameIntervalDuration()
	if err != nil || interval != 16*time.Millisecond {
		t.Errorf("expected frame_interval=16ms, got %v (%v)", interval, err)
	}

	// The client needs nothing beyond defaults.
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("default client config invalid: %v", err)
	}
	// The display needs a directory.
	if err := cfg.ValidateDisplay(); err == nil || !strings.Contains(err.Error(), "display.directory") {
		t.Errorf("expected display.directory error, got %v", err)
	}
}

func TestLoad_RequiresViewdConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when VIEWD_CONFIG not set, got nil")
	}

	expectedMsg := "VIEWD_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithViewdConfig(t *testing.T) {
	configPath := writeConfig(t, `
display:
  directory: /srv/images
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Display.Directory != "/srv/images" {
		t.Errorf("expected directory=/srv/images, got %s", cfg.Display.Directory)
	}
	// Values not in the file keep their defaults.
	if cfg.Display.Bind != DefaultAddress {
		t.Errorf("expected default bind, got %s", cfg.Display.Bind)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault(\"\") failed: %v", err)
	}
	if cfg.Client.Server != DefaultAddress {
		t.Errorf("expected default server, got %s", cfg.Client.Server)
	}

	explicit := writeConfig(t, "client:\n  server: explicit:1\n")
	fromEnv := writeConfig(t, "client:\n  server: environment:1\n")
	t.Setenv(EnvironmentVariable, fromEnv)

	cfg, err = LoadOrDefault(explicit)
	if err != nil || cfg.Client.Server != "explicit:1" {
		t.Errorf("explicit path: server=%s err=%v", cfg.Client.Server, err)
	}
	cfg, err = LoadOrDefault("")
	if err != nil || cfg.Client.Server != "environment:1" {
		t.Errorf("VIEWD_CONFIG path: server=%s err=%v", cfg.Client.Server, err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", "/home/viewer")
	configPath := writeConfig(t, `
display:
  bind: 0.0.0.0:9000
  directory: ${HOME}/Pictures
  headless: true
  frame_interval: 40ms
  rotate_degrees: 270
  tls:
    cert_file: ${CERT_DIR:-/etc/viewd}/cert.pem
    key_file: ${CERT_DIR:-/etc/viewd}/key.pem
client:
  server: display.local:9000
  download_dir: ${HOME}/Downloads/viewd
  tls:
    enabled: true
    server_name: display.local
log:
  level: debug
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Display.Bind != "0.0.0.0:9000" {
		t.Errorf("expected bind=0.0.0.0:9000, got %s", cfg.Display.Bind)
	}
	if cfg.Display.Directory != "/home/viewer/Pictures" {
		t.Errorf("expected expanded directory, got %s", cfg.Display.Directory)
	}
	if !cfg.Display.Headless {
		t.Error("expected headless=true")
	}
	if cfg.Display.TLS.CertFile != "/etc/viewd/cert.pem" || !cfg.Display.TLS.Enabled() {
		t.Errorf("expected cert_file default expansion, got %s", cfg.Display.TLS.CertFile)
	}
	if cfg.Client.DownloadDir != "/home/viewer/Downloads/viewd" {
		t.Errorf("expected expanded download_dir, got %s", cfg.Client.DownloadDir)
	}
	if !cfg.Client.TLS.Enabled || cfg.Client.TLS.ServerName != "display.local" {
		t.Errorf("unexpected client tls: %+v", cfg.Client.TLS)
	}

	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
	if err := cfg.ValidateDisplay(); err != nil {
		t.Errorf("ValidateDisplay: %v", err)
	}
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("ValidateClient: %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	configPath := writeConfig(t, "display: [not, a, mapping]\n")
	if _, err := LoadFile(configPath); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/images",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/images",
		},
		{
			input:    "${VIEWD_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidateDisplay(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:    "missing bind",
			modify:  func(c *Config) { c.Display.Bind = "" },
			wantErr: "display.bind is required",
		},
		{
			name:    "bad frame interval",
			modify:  func(c *Config) { c.Display.FrameInterval = "soon" },
			wantErr: "display.frame_interval",
		},
		{
			name:    "negative frame interval",
			modify:  func(c *Config) { c.Display.FrameInterval = "-1s" },
			wantErr: "must be positive",
		},
		{
			name:    "rotation not quarter turn",
			modify:  func(c *Config) { c.Display.RotateDegrees = 45 },
			wantErr: "display.rotate_degrees",
		},
		{
			name:    "zero rotation",
			modify:  func(c *Config) { c.Display.RotateDegrees = 0 },
			wantErr: "display.rotate_degrees",
		},
		{
			name:    "cert without key",
			modify:  func(c *Config) { c.Display.TLS.CertFile = "/cert.pem" },
			wantErr: "must be set together",
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Display.Directory = "/images"
			tt.modify(cfg)

			err := cfg.ValidateDisplay()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := Default()
	cfg.Display.Bind = ""
	cfg.Display.RotateDegrees = 10

	err := cfg.ValidateDisplay()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"display.bind", "display.directory", "display.rotate_degrees"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("aggregated error %q missing %s", err, want)
		}
	}
}

func TestValidateClient(t *testing.T) {
	cfg := Default()
	cfg.Client.TLS.InsecureSkipVerify = true
	if err := cfg.ValidateClient(); err == nil || !strings.Contains(err.Error(), "client.tls.enabled") {
		t.Errorf("expected tls.enabled error, got %v", err)
	}

	cfg = Default()
	cfg.Client.Server = ""
	if err := cfg.ValidateClient(); err == nil || !strings.Contains(err.Error(), "client.server") {
		t.Errorf("expected client.server error, got %v", err)
	}
}

func TestEnsureDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.Client.DownloadDir = filepath.Join(t.TempDir(), "nested", "downloads")

	directory, err := cfg.EnsureDownloadDir()
	if err != nil {
		t.Fatalf("EnsureDownloadDir failed: %v", err)
	}
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s: %v", directory, err)
	}
	if !filepath.IsAbs(directory) {
		t.Errorf("expected absolute path, got %s", directory)
	}
}
