/**
 * @description
 * This is the main entry point for the loan-proxy-service. It initializes
 * and wires together all the components of the application: configuration,
 * the Mambu API client, the loan service, and the HTTP router. Finally, it
 * starts the HTTP server and handles graceful shutdown.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, and the API.
 * - godotenv for local .env loading.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lendview/loan-proxy-service/internal/api"
	"github.com/lendview/loan-proxy-service/internal/app"
	"github.com/lendview/loan-proxy-service/internal/config"
	"github.com/lendview/loan-proxy-service/pkg/mambuclient"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	// Load application configuration; fails fast on missing Mambu settings.
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up dependencies.
	mambu := mambuclient.NewClient(cfg.MambuBaseURL, cfg.MambuAPIKey, logger)
	loanService := app.NewLoanService(mambu, cfg.DepositAccountID, logger)
	loanHandler := api.NewLoanHandler(loanService, logger)
	router := api.NewRouter(cfg, loanHandler)

	// Configure and start the HTTP server.
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting proxy server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("could not start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down loan-proxy-service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server gracefully stopped")
}
