package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"teamcap/internal/bamboo"
	"teamcap/internal/capacity"
	"teamcap/internal/config"
	"teamcap/internal/database"
)

// App is the application layer between the CLI and the capacity engine.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw date strings, and manages the cache lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   *database.SQLiteStore
	service *capacity.Service
	clock   capacity.Clock
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// The caller must call Close when done.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.APIKey == "" || cfg.Domain == "" {
		return nil, fmt.Errorf("api_key and domain must be configured (run 'teamcap config init')")
	}

	logger, logFile, err := newLogger(cfg.LogDir, cfg.ClientID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	store, err := database.NewStoreFromConfig(cfg.Database, cfg.ClientID, log)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating employee cache: %w", err)
	}

	if err := store.MigrateUp(); err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("migrating employee cache: %w", err)
	}

	client := bamboo.NewClient(bamboo.Config{
		APIKey:  cfg.APIKey,
		Domain:  cfg.Domain,
		BaseURL: cfg.Provider.BaseURL,
		Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
	})

	clock := capacity.RealClock{}
	svc := capacity.NewService(client, store, log, clock, cfg.Provider.ElevatedAccess)

	return &App{
		cfg:     cfg,
		store:   store,
		service: svc,
		clock:   clock,
		logFile: logFile,
	}, nil
}

// parseRange parses two raw ISO date strings into a date range.
func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := capacity.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := capacity.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

// Today returns the current date formatted as an ISO calendar date.
func (a *App) Today() string {
	return a.clock.Now().Format(capacity.DateLayout)
}

// AvailableEmployees answers who is available in the raw date range,
// optionally restricted to sectors or reduced to ids.
func (a *App) AvailableEmployees(ctx context.Context, start, end string, sectors []string, onlyIDs bool) (*capacity.Availability, error) {
	s, e, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	return a.service.AvailableEmployees(ctx, capacity.AvailabilityQuery{
		Start:   s,
		End:     e,
		Sectors: sectors,
		OnlyIDs: onlyIDs,
	})
}

// WhosOut returns the raw out-of-office records for the raw date range.
func (a *App) WhosOut(ctx context.Context, start, end string) ([]capacity.OutOfOffice, error) {
	s, e, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	return a.service.WhosOut(ctx, s, e)
}

// WorkingDays returns the working-day calendar for the raw date range.
func (a *App) WorkingDays(ctx context.Context, start, end string) ([]time.Time, error) {
	s, e, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	return a.service.WorkingDays(ctx, s, e)
}

// CalculateCapacity computes the sprint capacity for the raw date range.
// A zero focusFactor selects the default.
func (a *App) CalculateCapacity(ctx context.Context, start, end string, focusFactor float64, sectors []string) (*capacity.Capacity, error) {
	s, e, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	if focusFactor == 0 {
		focusFactor = capacity.DefaultFocusFactor
	}
	return a.service.CalculateCapacity(ctx, s, e, focusFactor, sectors)
}

// CacheCount returns the number of employees in the local cache.
func (a *App) CacheCount() (int, error) {
	return a.store.Count()
}

// CachePath returns the cache database location.
func (a *App) CachePath() string {
	return a.store.Path()
}

// RefreshCache clears the employee cache and repopulates it from the provider.
func (a *App) RefreshCache(ctx context.Context) (int, error) {
	if err := a.service.RefreshDirectory(ctx); err != nil {
		return 0, err
	}
	return a.store.Count()
}

// ClearCache empties the employee cache. The next availability query in
// non-elevated mode will repopulate it.
func (a *App) ClearCache() error {
	return a.store.DeleteAll()
}

// Close closes the cache and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing employee cache: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
