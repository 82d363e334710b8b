package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanbaker/analyzer/internal/api"
	"github.com/ethanbaker/analyzer/internal/logging"
	analyzer_store "github.com/ethanbaker/analyzer/internal/stores/analyzer"
	countries_store "github.com/ethanbaker/analyzer/internal/stores/countries"
	"github.com/ethanbaker/analyzer/internal/stores/database"
	"github.com/ethanbaker/analyzer/pkg/analyzer"
	"github.com/ethanbaker/analyzer/pkg/countries"
	"github.com/ethanbaker/analyzer/pkg/profile"
	"github.com/ethanbaker/analyzer/pkg/upstream"
	"github.com/ethanbaker/analyzer/pkg/utils"
)

// Start the API server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)
	settings, err := utils.LoadSettings(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("[API-MAIN]: failed to load settings")
	}

	logging.Init(logging.Config{Level: settings.Log.Level, Format: settings.Log.Format})

	// Open storage, falling back to memory when no database is configured
	var (
		stringStore  analyzer.StoreInterface  = analyzer_store.NewInMemoryStore()
		countryStore countries.StoreInterface = countries_store.NewInMemoryStore()
	)

	db, err := database.Open(settings.Database)
	switch {
	case err != nil:
		logging.Fatal().Err(err).Str("driver", settings.Database.Driver).Msg("[API-MAIN]: failed to open database")
	case db == nil:
		logging.Warn().Msg("[API-MAIN]: no database configured, records are kept in memory")
	default:
		s, err := analyzer_store.NewStore(db)
		if err != nil {
			logging.Fatal().Err(err).Msg("[API-MAIN]: failed to create string store")
		}
		stringStore = s

		c, err := countries_store.NewStore(db)
		if err != nil {
			logging.Fatal().Err(err).Msg("[API-MAIN]: failed to create country store")
		}
		countryStore = c
		defer s.Close()
	}

	// Create services
	a, err := analyzer.NewAnalyzer(stringStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("[API-MAIN]: failed to create analyzer")
	}

	refresher, err := countries.NewRefresher(&countries.RefresherOptions{
		Store:         countryStore,
		Source:        countries.NewHTTPSource(settings.Countries.CountriesURL, settings.Countries.RatesURL, upstream.Options{Timeout: settings.Countries.Timeout}),
		CacheDir:      settings.Countries.CacheDir,
		MinMultiplier: settings.Countries.MinMultiplier,
		MaxMultiplier: settings.Countries.MaxMultiplier,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("[API-MAIN]: failed to create country refresher")
	}
	if err := refresher.Schedule(settings.Countries.RefreshSpec); err != nil {
		logging.Fatal().Err(err).Msg("[API-MAIN]: failed to schedule country refresh")
	}
	defer refresher.Stop()

	profileService := profile.NewService(profile.Options{
		Identity: profile.Identity{
			Email: settings.Profile.Email,
			Name:  settings.Profile.Name,
			Stack: settings.Profile.Stack,
		},
		FactURL: settings.Profile.FactURL,
		Timeout: settings.Profile.FactTimeout,
	})

	// Serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = api.Start(ctx, &api.Dependencies{
		Settings:     settings,
		Analyzer:     a,
		CountryStore: countryStore,
		Refresher:    refresher,
		Profile:      profileService,
	})
	if err != nil {
		logging.Error().Err(err).Msg("[API-MAIN]: server stopped with error")
	}
}
