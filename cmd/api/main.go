package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ngoconnect/internal/adapter/repo"
	"ngoconnect/internal/http/handlers"
	httpapi "ngoconnect/internal/http/httpapi"
	"ngoconnect/internal/impact"
	"ngoconnect/internal/infra"
	"ngoconnect/internal/payment"
	"ngoconnect/internal/session"
	"ngoconnect/internal/store"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	kv, err := store.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open data store")
	}

	users := repo.NewUserRepository(kv)
	donations := repo.NewDonationRepository(kv)

	ctx := context.Background()

	// The admin seed runs exactly once per process, before anything else
	// touches the collections. Safe to invoke redundantly.
	if err := users.EnsureAdmin(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to provision admin account")
	}

	generator := impact.NewGenerator(impact.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})

	payments := payment.NewManager(donations, generator, logger, payment.DefaultDelays())

	sessions := session.NewProvider(kv, users)
	if err := sessions.Resume(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to resume stored session")
	}

	app := handlers.NewApp(logger, sessions, users, donations, payments)
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("portal listening on %s", server.Addr())
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	payments.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
