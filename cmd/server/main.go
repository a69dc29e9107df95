package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vprudente/insta-fashion/internal/application/services"
	"github.com/vprudente/insta-fashion/internal/application/usecases"
	"github.com/vprudente/insta-fashion/internal/config"
	domainservices "github.com/vprudente/insta-fashion/internal/domain/services"
	"github.com/vprudente/insta-fashion/internal/infrastructure/api"
	"github.com/vprudente/insta-fashion/internal/infrastructure/external"
	infraservices "github.com/vprudente/insta-fashion/internal/infrastructure/services"
	"github.com/vprudente/insta-fashion/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retailers, err := cfg.Retailers()
	if err != nil {
		logger.Error("Failed to load retailers", "error", err)
		os.Exit(1)
	}

	// Initialize infrastructure layer
	clientPool := infraservices.NewClientPoolService(external.NewClientConfig(cfg))
	oracle, err := external.NewOracleService(ctx, cfg, clientPool)
	if err != nil {
		logger.Error("Failed to create oracle service", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer oracle.Close()

	// Initialize domain layer
	linkBuilder := domainservices.NewStoreLinkBuilder(retailers)
	visionService := domainservices.NewVisionAnalysisService(oracle)
	pricingService := domainservices.NewPricingService(oracle)
	aggregator := domainservices.NewProductAggregator(pricingService, linkBuilder)

	// Initialize application layer
	recommendationUseCase := usecases.NewRecommendationUseCase(
		visionService,
		aggregator,
		linkBuilder.RetailerIDs(),
		cfg.VisionTimeout,
		cfg.PricingTimeout,
	)
	parameterService := services.NewParameterService(cfg.MaxImageBytes)

	// Initialize API layer
	handler := api.NewRecommendationHandler(recommendationUseCase, parameterService, linkBuilder.Retailers(), oracle.Backend())

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("Starting server",
		"addr", server.Addr,
		"backend", oracle.Backend(),
		"retailers", linkBuilder.RetailerIDs(),
		"visionTimeout", cfg.VisionTimeout.String(),
		"pricingTimeout", cfg.PricingTimeout.String())

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
