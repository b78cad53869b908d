package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// setupTestHome points HOME at a temp dir and returns the allowed config dir.
func setupTestHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "socialintel")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	return configDir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  host: 127.0.0.1
  port: 9100
  shutdown_timeout: 3s

access:
  code: vyudu2024
  cookie_name: si

content:
  dir: /srv/socialintel/data
  watch: false
`, 0600)

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9100 {
		t.Errorf("Server = %+v, want 127.0.0.1:9100", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Access.Code.Value() != "vyudu2024" {
		t.Errorf("Access.Code not loaded from file")
	}
	if cfg.Access.CookieName != "si" {
		t.Errorf("CookieName = %q, want si", cfg.Access.CookieName)
	}
	if cfg.Content.Dir != "/srv/socialintel/data" || cfg.Content.Watch {
		t.Errorf("Content = %+v", cfg.Content)
	}
	// Untouched sections keep defaults.
	if cfg.Access.MaxSessions != DefaultMaxSessions {
		t.Errorf("MaxSessions = %d, want default %d", cfg.Access.MaxSessions, DefaultMaxSessions)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadWithFile_EnvironmentOverride(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  port: 9100
access:
  code: from-file
`, 0600)

	t.Setenv("SOCIALINTEL_SERVER_PORT", "7777")
	t.Setenv("SOCIALINTEL_ACCESS_CODE", "from-env")
	t.Setenv("SOCIALINTEL_ACCESS_COOKIE_NAME", "env_cookie")

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (from env override)", cfg.Server.Port)
	}
	if cfg.Access.Code.Value() != "from-env" {
		t.Errorf("Access.Code should come from env override")
	}
	if cfg.Access.CookieName != "env_cookie" {
		t.Errorf("CookieName = %q, want env_cookie", cfg.Access.CookieName)
	}
}

func TestLoadWithFile_MissingFileUsesDefaults(t *testing.T) {
	dir := setupTestHome(t)

	cfg, err := LoadWithFile(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v, want nil", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
}

func TestLoadWithFile_DefaultPath(t *testing.T) {
	setupTestHome(t)

	if _, err := LoadWithFile(""); err != nil {
		t.Fatalf("LoadWithFile(\"\") error = %v, want nil", err)
	}
}

func TestLoadWithFile_InvalidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server: [unterminated\n", 0600)

	if _, err := LoadWithFile(path); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoadWithFile_Validation(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  port: 99999\n", 0600)

	_, err := LoadWithFile(path)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Expected validation error, got: %v", err)
	}
}

func TestLoadWithFile_PathOutsideAllowedDirs(t *testing.T) {
	setupTestHome(t)
	outside := filepath.Join(t.TempDir(), "config.yaml")

	_, err := LoadWithFile(outside)
	if err == nil || !strings.Contains(err.Error(), "path validation") {
		t.Errorf("Expected path validation error, got: %v", err)
	}
}

func TestLoadWithFile_PathTraversal(t *testing.T) {
	dir := setupTestHome(t)

	_, err := LoadWithFile(filepath.Join(dir, "..", "..", "etc-passwd.yaml"))
	if err == nil {
		t.Error("Expected error for path traversal, got nil")
	}
}

func TestLoadWithFile_SiblingPrefixRejected(t *testing.T) {
	dir := setupTestHome(t)
	sibling := dir + "-evil"
	if err := os.MkdirAll(sibling, 0700); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadWithFile(filepath.Join(sibling, "config.yaml")); err == nil {
		t.Error("Expected error for sibling directory sharing a prefix, got nil")
	}
}

func TestLoadWithFile_InsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}

	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  port: 9100\n", 0644)

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("Expected error for insecure permissions, got nil")
	}
	if !strings.Contains(err.Error(), "insecure") {
		t.Errorf("Expected 'insecure permissions' error, got: %v", err)
	}
}

func TestLoadWithFile_ReadOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}

	dir := setupTestHome(t)
	path := writeConfig(t, dir, "server:\n  port: 9100\n", 0400)

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() should accept 0400, got error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
}

func TestLoadWithFile_FileTooLarge(t *testing.T) {
	dir := setupTestHome(t)
	path := filepath.Join(dir, "config.yaml")

	largeContent := bytes.Repeat([]byte("# comment line\n"), 150000)
	if err := os.WriteFile(path, largeContent, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadWithFile(path)
	if err == nil {
		t.Fatal("Expected error for large file, got nil")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected 'too large' error, got: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SOCIALINTEL_SERVER_PORT":             "server.port",
		"SOCIALINTEL_SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
		"SOCIALINTEL_ACCESS_CODE":             "access.code",
		"SOCIALINTEL_TELEMETRY_SERVICE_NAME":  "telemetry.service_name",
		"SOCIALINTEL_DEBUG":                   "debug",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
