package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	alerthandler "marketing-dashboard/backend/internal/alert/handler"
	alertrepo "marketing-dashboard/backend/internal/alert/repository"
	authhandler "marketing-dashboard/backend/internal/auth/handler"
	campaignhandler "marketing-dashboard/backend/internal/campaign/handler"
	campaignrepo "marketing-dashboard/backend/internal/campaign/repository"
	"marketing-dashboard/backend/internal/config"
	"marketing-dashboard/backend/internal/db"
	healthhandler "marketing-dashboard/backend/internal/health/handler"
	integrationhandler "marketing-dashboard/backend/internal/integration/handler"
	integrationrepo "marketing-dashboard/backend/internal/integration/repository"
	"marketing-dashboard/backend/internal/llm"
	metricrepo "marketing-dashboard/backend/internal/metric/repository"
	predictionhandler "marketing-dashboard/backend/internal/prediction/handler"
	predictionrepo "marketing-dashboard/backend/internal/prediction/repository"
	recommendationhandler "marketing-dashboard/backend/internal/recommendation/handler"
	recommendationrepo "marketing-dashboard/backend/internal/recommendation/repository"
	"marketing-dashboard/backend/internal/security"
	"marketing-dashboard/backend/internal/server"
	userrepo "marketing-dashboard/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	// The handle connects lazily: the API comes up even when Postgres is down
	// and reads degrade to empty until it returns.
	store := db.NewHandle(cfg.DatabaseURL)
	defer store.Close()

	users := userrepo.NewPostgresRepository(store, cfg.OwnerUserID)
	integrations := integrationrepo.NewPostgresRepository(store)
	campaigns := campaignrepo.NewPostgresRepository(store)
	metrics := metricrepo.NewPostgresRepository(store)
	predictions := predictionrepo.NewPostgresRepository(store)
	recommendations := recommendationrepo.NewPostgresRepository(store)
	alerts := alertrepo.NewPostgresRepository(store)

	verifier := security.NewSessionVerifier([]byte(cfg.SessionSecret))
	generator := llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMRequestTimeout())

	router := server.NewRouter(server.Handlers{
		Auth:           authhandler.NewHandler(users, cfg.SessionCookieName, log),
		Integration:    integrationhandler.NewHandler(integrations),
		Campaign:       campaignhandler.NewHandler(campaigns, metrics),
		Prediction:     predictionhandler.NewHandler(predictions, campaigns),
		Recommendation: recommendationhandler.NewHandler(recommendations, campaigns, alerts, generator, log),
		Alert:          alerthandler.NewHandler(alerts, users),
		Health:         healthhandler.NewHandler(store),
	}, verifier, cfg.SessionCookieName, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("serve failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", slog.String("err", err.Error()))
	}
	log.Info("http server stopped")
}
