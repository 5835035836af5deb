package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://localhost/gtm"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidBriefProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Brief.Provider = "anthropic"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid brief provider")
	}

	expected := `brief.provider must be "rules" or "openai", got "anthropic"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_OpenAIRequiresKey(t *testing.T) {
	cfg := validConfig()
	cfg.Brief.Provider = "openai"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai provider without api key")
	}

	cfg.Brief.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database dsn")
	}
}

func TestValidate_LimitOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.DefaultLimit = 60

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default_limit exceeds max_limit")
	}
}

func TestValidate_InvalidCron(t *testing.T) {
	cfg := validConfig()
	cfg.Facets.RefreshCron = "every tuesday"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if !strings.HasPrefix(err.Error(), "facets.refresh_cron:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected MaxConns=10, got %d", cfg.Database.MaxConns)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.QueryTimeoutSec != 5 {
		t.Errorf("expected QueryTimeoutSec=5, got %d", cfg.Database.QueryTimeoutSec)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected TTLSec=300, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Matching.DefaultLimit != 5 || cfg.Matching.MaxLimit != 50 {
		t.Errorf("expected limits 5/50, got %d/%d", cfg.Matching.DefaultLimit, cfg.Matching.MaxLimit)
	}
	if cfg.Brief.Provider != "rules" {
		t.Errorf("expected Provider='rules', got %q", cfg.Brief.Provider)
	}
	if cfg.Facets.RefreshCron != "*/15 * * * *" {
		t.Errorf("expected RefreshCron='*/15 * * * *', got %q", cfg.Facets.RefreshCron)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache should be disabled without addrs")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15, MaxConns: 4},
		Cache:    CacheConfig{TTLSec: 60},
		Brief:    BriefConfig{Provider: "openai", Model: "gpt-4o"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("expected MaxConns=4, got %d", cfg.Database.MaxConns)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("expected TTLSec=60, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Brief.Model != "gpt-4o" {
		t.Errorf("expected Model='gpt-4o', got %q", cfg.Brief.Model)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("AGENCYMATCH_TEST_DSN", "postgres://db/gtm")

	cfg, err := Parse([]byte(`
http:
  port: ${AGENCYMATCH_TEST_PORT:-9090}
database:
  dsn: ${AGENCYMATCH_TEST_DSN}
cache:
  addrs: ["localhost:6379"]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected default port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "postgres://db/gtm" {
		t.Errorf("unexpected dsn %q", cfg.Database.DSN)
	}
	if !cfg.Cache.Enabled() {
		t.Error("expected cache to be enabled")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error for missing dsn")
	}
}
