package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/tlpmark/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080

[log]
level = "debug"
format = "json"

[database]
host = "localhost"
port = 5432
name = "tlpmark"
user = "tlpmark"
password = "tlpmark"

[storage]
provider = "azure"
container_name = "workbooks"
connection_string = "DefaultEndpointsProtocol=http;AccountName=tlpmarkstore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/tlpmarkstore;"

[auth]
enabled = false

[api]
base_path = "/api"
max_upload_size = "10MB"

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[auth]
enabled = true
issuer = "https://login.example.com"
client_id = "tlpmark"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"server port", cfg.Server.Port, 8080},
		{"log format", cfg.Log.Format, "json"},
		{"db host", cfg.Database.Host, "localhost"},
		{"storage container", cfg.Storage.ContainerName, "workbooks"},
		{"auth enabled", cfg.Auth.Enabled, false},
		{"api base path", cfg.API.BasePath, "/api"},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(10 * 1024 * 1024)},
		{"max page size", cfg.API.Pagination.MaxPageSize, 50},
		{"shutdown timeout", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Chdir(dir)
	t.Setenv(config.EnvTlpmarkEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if !cfg.Auth.Enabled || cfg.Auth.ClientID != "tlpmark" {
		t.Errorf("auth: got %+v, want enabled from overlay", cfg.Auth)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Chdir(dir)

	t.Setenv("TLPMARK_VERSION", "2.0.0")
	t.Setenv("TLPMARK_SERVER_PORT", "3000")
	t.Setenv("TLPMARK_STORAGE_PROVIDER", "minio")
	t.Setenv("TLPMARK_STORAGE_ENDPOINT", "localhost:9000")
	t.Setenv("TLPMARK_STORAGE_ACCESS_KEY", "minioadmin")
	t.Setenv("TLPMARK_STORAGE_SECRET_KEY", "minioadmin")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Storage.Provider != "minio" || cfg.Storage.Endpoint != "localhost:9000" {
		t.Errorf("storage: got %+v, want minio from env", cfg.Storage)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("TLPMARK_DB_NAME", "testdb")
	t.Setenv("TLPMARK_DB_USER", "testuser")
	t.Setenv("TLPMARK_STORAGE_CONNECTION_STRING", "conn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default: got %s, want info", cfg.Log.Level)
	}
	if cfg.API.MaxUploadSizeBytes() != 25*1024*1024 {
		t.Errorf("max upload default: got %d", cfg.API.MaxUploadSizeBytes())
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", `server = [`, "parse config"},
		{"bad log level", strings.Replace(baseConfig, `level = "debug"`, `level = "loud"`, 1), "log"},
		{"auth without issuer", strings.Replace(baseConfig, "enabled = false", "enabled = true", 1), "auth"},
		{"bad upload size", strings.Replace(baseConfig, `"10MB"`, `"lots"`, 1), "max_upload_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.content)
			t.Chdir(dir)

			_, err := config.Load()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLogConfig(t *testing.T) {
	cfg := config.LogConfig{Level: "warn", Format: "json"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "classification", "TLP:RED")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, `"classification":"TLP:RED"`) {
		t.Errorf("json output missing attribute: %s", out)
	}

	bad := config.LogConfig{Level: "loud"}
	if err := bad.Finalize(); err == nil {
		t.Error("expected error for unknown level")
	}
}
