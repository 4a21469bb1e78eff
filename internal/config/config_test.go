package config

import (
	"testing"
	"time"

	"github.com/V1TECKOR/interclub/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "interclub-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL default, got %q", cfg.DBURL)
	}
	if cfg.FederationIntrospectPath != "/v1/auth/introspect" {
		t.Fatalf("unexpected introspect path: %q", cfg.FederationIntrospectPath)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_MailRelayRequiresBaseURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MAIL_RELAY_ENABLED", "true")
	t.Setenv("MAIL_RELAY_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when MAIL_RELAY_ENABLED=true without MAIL_RELAY_BASE_URL")
	}
}

func TestLoad_MailRelayConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MAIL_RELAY_ENABLED", "true")
	t.Setenv("MAIL_RELAY_BASE_URL", "https://relay.example.com")
	t.Setenv("MAIL_RELAY_API_KEY", "relay-key")
	t.Setenv("MAIL_RELAY_SENDER", "matches@club.example")
	t.Setenv("MAIL_RELAY_TIMEOUT", "4s")
	t.Setenv("MAIL_RELAY_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.MailRelayEnabled {
		t.Fatalf("expected MailRelayEnabled=true")
	}
	if cfg.MailRelaySender != "matches@club.example" {
		t.Fatalf("unexpected sender: %q", cfg.MailRelaySender)
	}
	if cfg.MailRelayTimeout != 4*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.MailRelayTimeout)
	}
	if cfg.MailRelayCircuitFailureCount != 3 {
		t.Fatalf("unexpected failure count: %d", cfg.MailRelayCircuitFailureCount)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without server address")
	}
}
