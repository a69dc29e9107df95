package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vprudente/insta-fashion/internal/application/usecases"
	"github.com/vprudente/insta-fashion/internal/config"
	"github.com/vprudente/insta-fashion/internal/domain/services"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/infrastructure/external"
	"github.com/vprudente/insta-fashion/internal/infrastructure/formatter"
	infraservices "github.com/vprudente/insta-fashion/internal/infrastructure/services"
	"github.com/vprudente/insta-fashion/internal/logging"
)

type analyzeOptions struct {
	budget       string
	outputFormat string
	logLevel     string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Analyze an outfit photo and print recommendations",
		Long: `Analyze an outfit photo: one vision call describes the look, then every key
piece is priced in parallel and linked to retailer searches.

Examples:
  # Mid-range recommendations, human readable
  stylescan analyze look.jpg

  # Luxury tier as JSON, the same shape the HTTP API returns
  stylescan analyze look.jpg --budget luxury -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.budget, "budget", "b", "medium", "Budget tier (budget, medium, luxury)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "error", "Log level written to stderr")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	image, err := valueobjects.NewImageData(raw, "")
	if err != nil {
		return fmt.Errorf("invalid image %s: %w", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	retailers, err := cfg.Retailers()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.SetupWriter(os.Stderr, opts.logLevel, "text")
	ctx = logging.WithContext(ctx, logger)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Connecting to %s...", cfg.Backend)
	s.Start()

	clientPool := infraservices.NewClientPoolService(external.NewClientConfig(cfg))
	oracle, err := external.NewOracleService(ctx, cfg, clientPool)
	if err != nil {
		s.Stop()
		return fmt.Errorf("failed to create oracle service: %w", err)
	}
	defer oracle.Close()

	linkBuilder := services.NewStoreLinkBuilder(retailers)
	uc := usecases.NewRecommendationUseCase(
		services.NewVisionAnalysisService(oracle),
		services.NewProductAggregator(services.NewPricingService(oracle), linkBuilder),
		linkBuilder.RetailerIDs(),
		cfg.VisionTimeout,
		cfg.PricingTimeout,
	)

	s.Stop()
	printSuccess(fmt.Sprintf("Using %s backend", oracle.Backend()))

	s.Suffix = " Analyzing outfit..."
	s.Start()

	response, err := uc.Execute(ctx, usecases.RecommendationInput{
		Image:  image,
		Budget: opts.budget,
	})
	s.Stop()
	if err != nil {
		printError("Analysis failed")
		return err
	}
	printSuccess(fmt.Sprintf("Found %d key pieces", len(response.Core.Items)))

	return formatter.DisplayResults(cmd.OutOrStdout(), response, opts.outputFormat)
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(os.Stderr, "✗ %s\n", msg)
}
