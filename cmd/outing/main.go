package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/outing/internal/cli"
	"github.com/alexanderramin/outing/internal/cli/formatter"
	"github.com/alexanderramin/outing/internal/config"
	"github.com/alexanderramin/outing/internal/db"
	"github.com/alexanderramin/outing/internal/intent"
	"github.com/alexanderramin/outing/internal/llm"
	"github.com/alexanderramin/outing/internal/places"
	"github.com/alexanderramin/outing/internal/repository"
	"github.com/alexanderramin/outing/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)

	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	venueRepo := repository.NewSQLiteVenueRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	if cfg.PlacesAPIKey == "" {
		logger.Warn("no Places API key set; venue lookups will be denied", "env", "OUTING_PLACES_API_KEY")
	}
	placesClient := places.NewClient(places.ClientConfig{
		BaseURL: cfg.PlacesBaseURL,
		APIKey:  cfg.PlacesAPIKey,
		RPS:     cfg.PlacesRPS,
		Timeout: cfg.PlacesTimeout,
	}, logger)
	centers := places.NewCenterCache(cfg.CenterCacheTTL)

	observer := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Plan: service.NewPlanService(placesClient, centers, venueRepo, uow, service.PlanServiceConfig{
			Limits: &places.Limits{
				Search:  cfg.SearchCalls,
				Details: cfg.DetailsCalls,
				Route:   cfg.RouteCalls,
			},
			Tables:         tables,
			VenueTTL:       cfg.VenueCacheTTL,
			ClusterRadiusM: cfg.ClusterRadiusM,
		}, logger, observer),
		Cache:  service.NewCacheService(venueRepo, nil, observer),
		Tables: tables,
	}

	// Free-text requests only when the LLM is enabled
	if cfg.LLM.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			llmObserver = llm.NewLogObserver(logger)
		}
		client, err := llm.NewClient(cfg.LLM, llmObserver)
		if err != nil {
			return fmt.Errorf("creating LLM client: %w", err)
		}
		app.Intent = intent.NewService(client, cfg.LLM.ConfidenceThreshold)
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	formatter.SetColorEnabled(!noColor && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
