package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	FederationBaseURL              string
	FederationIntrospectPath       string
	FederationTimeout              time.Duration
	MailRelayEnabled               bool
	MailRelayBaseURL               string
	MailRelayAPIKey                string
	MailRelaySender                string
	MailRelayTimeout               time.Duration
	MailRelayCircuitEnabled        bool
	MailRelayCircuitFailureCount   int
	MailRelayCircuitOpenTimeout    time.Duration
	MailRelayCircuitHalfOpenMaxReq int
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	mailRelayEnabled, err := strconv.ParseBool(getEnv("MAIL_RELAY_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_ENABLED: %w", err)
	}
	mailRelayBaseURL := strings.TrimSpace(getEnv("MAIL_RELAY_BASE_URL", ""))
	mailRelayAPIKey := strings.TrimSpace(getEnv("MAIL_RELAY_API_KEY", ""))
	mailRelaySender := strings.TrimSpace(getEnv("MAIL_RELAY_SENDER", "noreply@interclub.example"))
	if mailRelayEnabled {
		if mailRelayBaseURL == "" {
			return Config{}, fmt.Errorf("MAIL_RELAY_BASE_URL is required when MAIL_RELAY_ENABLED=true")
		}
		if mailRelayAPIKey == "" {
			return Config{}, fmt.Errorf("MAIL_RELAY_API_KEY is required when MAIL_RELAY_ENABLED=true")
		}
	}
	mailRelayTimeout, err := time.ParseDuration(getEnv("MAIL_RELAY_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_TIMEOUT: %w", err)
	}
	if mailRelayTimeout <= 0 {
		return Config{}, fmt.Errorf("MAIL_RELAY_TIMEOUT must be > 0")
	}
	mailRelayCircuitEnabled, err := strconv.ParseBool(getEnv("MAIL_RELAY_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_CIRCUIT_ENABLED: %w", err)
	}
	mailRelayCircuitFailureCount, err := getEnvAsInt("MAIL_RELAY_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if mailRelayCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MAIL_RELAY_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	mailRelayCircuitOpenTimeout, err := time.ParseDuration(getEnv("MAIL_RELAY_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if mailRelayCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("MAIL_RELAY_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	mailRelayCircuitHalfOpenMaxReq, err := getEnvAsInt("MAIL_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAIL_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if mailRelayCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MAIL_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	federationTimeout, err := time.ParseDuration(getEnv("FEDERATION_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEDERATION_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "interclub-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		FederationBaseURL:              getEnv("FEDERATION_BASE_URL", "http://localhost:8081"),
		FederationIntrospectPath:       getEnv("FEDERATION_INTROSPECT_PATH", "/v1/auth/introspect"),
		FederationTimeout:              federationTimeout,
		MailRelayEnabled:               mailRelayEnabled,
		MailRelayBaseURL:               mailRelayBaseURL,
		MailRelayAPIKey:                mailRelayAPIKey,
		MailRelaySender:                mailRelaySender,
		MailRelayTimeout:               mailRelayTimeout,
		MailRelayCircuitEnabled:        mailRelayCircuitEnabled,
		MailRelayCircuitFailureCount:   mailRelayCircuitFailureCount,
		MailRelayCircuitOpenTimeout:    mailRelayCircuitOpenTimeout,
		MailRelayCircuitHalfOpenMaxReq: mailRelayCircuitHalfOpenMaxReq,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
