package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/google"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	"flex_reviews/internal/storage/memory"
	mysqlstore "flex_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// approval store: durable when a DSN is configured, volatile otherwise
	var store domain.ApprovalStore
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		store = mysqlstore.NewApprovalStore(db)
		log.Info().Msg("approval store: mysql")
	} else {
		store = memory.NewApprovalStore()
		log.Warn().Msg("approval store: in-memory, approvals reset on restart")
	}

	// raw-source cache
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	// hostaway channel: live client when a key is configured, else mock file
	var hostClient *hostaway.Client
	if cfg.HostawayKey != "" {
		var err error
		hostClient, err = hostaway.NewClient(cfg.HostawayBase, cfg.HostawayKey, cfg.HostawayAccount, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Hostaway client")
		}
	}
	source := hostaway.NewSource(hostClient, cfg.HostawayMock, cache, cfg.CacheTTL)

	// google places collaborator, optional
	var places domain.PlacesClient
	if cfg.GoogleKey != "" {
		client, err := google.New(cfg.GoogleBase, cfg.GoogleKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Places client")
		}
		places = client
	}

	q := app.NewQueryService([]domain.ReviewSource{source}, store, places)
	a := app.NewApprovalService(store)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, A: a})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
