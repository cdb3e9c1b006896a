package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swingold/backend/docs"
	"github.com/swingold/backend/internal/chain"
	"github.com/swingold/backend/internal/config"
	"github.com/swingold/backend/internal/database"
	"github.com/swingold/backend/internal/handlers"
	mW "github.com/swingold/backend/internal/middleware"
	"github.com/swingold/backend/internal/services"
)

// @title Swingold Ledger API
// @version 1.0
// @description Campus rewards ledger and blockchain reconciliation
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	if err := config.Init(".env"); err != nil {
		logrus.WithError(err).Info("Config file not found, using environment and defaults")
	}
	cfg := config.LoadLedgerConfig()
	setupLogging(cfg)

	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.ChainTimeout)
	chainClient, err := chain.Dial(dialCtx, cfg.ChainRPCURL, cfg.TokenAddress)
	cancelDial()
	if err != nil {
		logrus.WithError(err).WithField("rpc_url", cfg.ChainRPCURL).Fatal("Failed to initialize chain client")
	}
	defer chainClient.Close()

	docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort

	logger := logrus.StandardLogger()
	store := services.NewLedgerStore(db)
	directory := services.NewDirectory(db)
	statistics := services.NewStatisticsService(db, directory, redisClient, cfg.StatsCacheTTL, logger)
	recorder := services.NewTransactionRecorder(store, directory, statistics, logger)
	reconciler := services.NewChainReconciler(chainClient, store, redisClient, statistics, services.ReconcilerConfig{
		Timeout:  cfg.ChainTimeout,
		CacheTTL: cfg.ChainCacheTTL,
	}, logger)
	ledgerHandler := handlers.NewLedgerHandler(recorder, reconciler, store, statistics, directory)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		reconciler.RunSweeper(sweepCtx, cfg.SweepInterval, cfg.SweepBatch)
	}()

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status, code = "database unavailable", http.StatusServiceUnavailable
		}
		services.SendJSON(w, code, map[string]string{"status": status})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		ledgerHandler.Routes(r, mW.AuthMiddleware)
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	stopSweeper()
	<-sweeperDone

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server stopped")
}

func setupLogging(cfg *config.LedgerConfig) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
