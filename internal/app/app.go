package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/V1TECKOR/interclub/internal/config"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/infrastructure/account/federation"
	"github.com/V1TECKOR/interclub/internal/infrastructure/notify/mailrelay"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/postgres"
	"github.com/V1TECKOR/interclub/internal/interfaces/httpapi"
	idgen "github.com/V1TECKOR/interclub/internal/platform/id"
	"github.com/V1TECKOR/interclub/internal/platform/resilience"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

// NewHTTPServer wires the full service. The returned cleanup closes the
// database handle when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	store, cleanup, err := newStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewRandomGenerator()
	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		usecase.NewRegistrationService(store, ids),
		usecase.NewTeamService(store, ids, logger),
		usecase.NewMembershipService(store, notifier, logger),
		usecase.NewMatchService(store, ids, notifier, logger),
		usecase.NewScheduleService(store, ids, logger),
		usecase.NewLineupService(store, logger),
		usecase.NewTaskService(store),
		usecase.NewMessageService(store, ids),
		usecase.NewDashboardService(store),
		logger,
	)

	federationClient := federation.NewClient(
		&http.Client{Timeout: cfg.FederationTimeout},
		cfg.FederationBaseURL,
		cfg.FederationIntrospectPath,
		logger,
	)

	router := httpapi.NewRouter(handler, federationClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newStore(cfg config.Config, logger *slog.Logger) (storage.Store, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory store", "reason", "DB_URL empty")
		return memory.NewSeededStore(), func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	logger.Info("using postgres store", "db_name", dbNameFromURL(cfg.DBURL))
	return postgres.NewStore(db), db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

func newNotifier(cfg config.Config, logger *slog.Logger) (usecase.Notifier, error) {
	if !cfg.MailRelayEnabled {
		logger.Info("mail relay disabled", "reason", "MAIL_RELAY_ENABLED=false")
		return usecase.NopNotifier{}, nil
	}

	client, err := mailrelay.NewClient(mailrelay.Config{
		BaseURL: cfg.MailRelayBaseURL,
		APIKey:  cfg.MailRelayAPIKey,
		Sender:  cfg.MailRelaySender,
		Timeout: cfg.MailRelayTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MailRelayCircuitEnabled,
			FailureThreshold: cfg.MailRelayCircuitFailureCount,
			OpenTimeout:      cfg.MailRelayCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MailRelayCircuitHalfOpenMaxReq,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build mail relay client: %w", err)
	}

	logger.Info("mail relay enabled", "sender", cfg.MailRelaySender)
	return client, nil
}
