package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/buildinfo"
	"github.com/xelth-com/siigozoho/internal/config"
	"github.com/xelth-com/siigozoho/internal/handlers"
	"github.com/xelth-com/siigozoho/internal/logger"
	"github.com/xelth-com/siigozoho/internal/services/siigo"
	"github.com/xelth-com/siigozoho/internal/services/zoho"
	"github.com/xelth-com/siigozoho/internal/sync"
	"github.com/xelth-com/siigozoho/web"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{ServiceName: "siigozoho"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Logger
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "siigozoho",
		Version:     buildinfo.Commit(),
	})

	// 3. Upstream clients and the sync service
	siigoClient := siigo.NewClient(cfg.Siigo, log)
	zohoClient := zoho.NewClient(cfg.Zoho, log)
	syncService := sync.NewService(zohoClient, siigoClient, cfg.Zoho.AllowedUsers, log)

	if len(cfg.Zoho.AllowedUsers) == 0 {
		log.Warn().Msg("⚠️ ALLOWED_USERS_ZOHO is empty, every sync will be denied")
	}

	// 4. Set up HTTP router
	pages, err := web.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	static, err := web.GetFileSystem()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open static files")
	}
	router := handlers.NewRouter(syncService, pages, static, log)

	// 5. Start server with graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.AppEnv).
			Str("commit", buildinfo.Commit()).
			Str("build_time", buildinfo.BuildTime).
			Msg("🚀 Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	waitForShutdown(shutdown, server, log)
}

func waitForShutdown(shutdown <-chan os.Signal, server *http.Server, log zerolog.Logger) {
	sig := <-shutdown
	log.Warn().Str("signal", sig.String()).Msg("⚠️ Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	log.Info().Msg("✅ Shutdown complete")
}
