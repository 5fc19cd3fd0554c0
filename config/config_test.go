package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type testClient struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Clients       map[string]testClient `mapstructure:"clients"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleYAML = `
name: dataprovider
environment: staging
logging:
  level: warn
  format: json
clients:
  placeholder:
    url: https://jsonplaceholder.typicode.com
    timeout: 5s
`

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development with debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug || cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging, got debug=%v level=%q", cfg.Debug, cfg.Logging.Level)
		}
	})

	t.Run("explicit level is kept", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.Logging.Level = "error"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "error" {
			t.Errorf("expected 'error', got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: "production"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid logging", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)

	var cfg testConfig
	if err := LoadConfig("dataprovider", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "dataprovider" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config: %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	client, ok := cfg.Clients["placeholder"]
	if !ok {
		t.Fatalf("client missing: %+v", cfg.Clients)
	}
	if client.URL != "https://jsonplaceholder.typicode.com" || client.Timeout != 5*time.Second {
		t.Errorf("unexpected client: %+v", client)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)

	t.Setenv("APP_LOGGING_LEVEL", "error")
	t.Setenv("APP_CLIENTS_PLACEHOLDER_URL", "http://localhost:3000")
	t.Setenv("APP_CLIENTS_OTHER_URL", "http://ignored")

	var cfg testConfig
	if err := LoadConfig("dataprovider", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env override for logging.level, got %q", cfg.Logging.Level)
	}
	if cfg.Clients["placeholder"].URL != "http://localhost:3000" {
		t.Errorf("expected env override for client url, got %q", cfg.Clients["placeholder"].URL)
	}
	if _, ok := cfg.Clients["other"]; ok {
		t.Error("unknown keys must not be created from the environment")
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)
	envPath := writeFile(t, dir, ".env", "APP_ENVIRONMENT=production\n")
	t.Cleanup(func() { _ = os.Unsetenv("APP_ENVIRONMENT") })

	var cfg testConfig
	if err := LoadConfig("dataprovider", &cfg, WithConfigFile(path), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "from-env")

	var cfg testConfig
	err := LoadConfig("dataprovider", &cfg,
		WithFileSystem(&mockFS{}),
		WithDefault("name", "default-name"),
		WithDefault("environment", "development"),
	)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("expected env to beat default, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected default environment, got %q", cfg.Environment)
	}
}

func TestLoadConfigCustomPrefix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)
	t.Setenv("DP_NAME", "custom")
	t.Setenv("APP_NAME", "ignored")

	var cfg testConfig
	if err := LoadConfig("dataprovider", &cfg, WithConfigFile(path), WithEnvPrefix("dp")); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "custom" {
		t.Errorf("expected DP_ override, got %q", cfg.Name)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("dataprovider", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "nope.yml")))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unclosed")

	var cfg testConfig
	if err := LoadConfig("dataprovider", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

type mockFS struct {
	existing map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.existing[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverResolveFiles(t *testing.T) {
	fs := &mockFS{existing: map[string]bool{
		"./config/config.yml":           true,
		"./cmd/dataprovider/.env":       true,
		"./cmd/dataprovider/config.yml": true,
	}}
	r := &Resolver{FileSystem: fs}

	got := r.ResolveFiles("dataprovider", LoaderConfig{})
	if got.ConfigFile != "./config/config.yml" {
		t.Errorf("config file = %q", got.ConfigFile)
	}
	if got.EnvFile != "./cmd/dataprovider/.env" {
		t.Errorf("env file = %q", got.EnvFile)
	}

	explicit := r.ResolveFiles("dataprovider", LoaderConfig{ConfigFile: "x.yml", EnvFile: "y.env"})
	if explicit.ConfigFile != "x.yml" || explicit.EnvFile != "y.env" {
		t.Errorf("explicit paths not kept: %+v", explicit)
	}

	none := (&Resolver{FileSystem: &mockFS{}}).ResolveFiles("dataprovider", LoaderConfig{})
	if none.ConfigFile != "" || none.EnvFile != "" {
		t.Errorf("expected nothing resolved, got %+v", none)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("LOGGING_NO_COLOR")
	want := []string{"logging.no.color", "logging.no_color", "logging_no.color", "logging_no_color"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := generateEnvKeyVariants("NAME"); !reflect.DeepEqual(got, []string{"name"}) {
		t.Errorf("single part: %v", got)
	}
}
