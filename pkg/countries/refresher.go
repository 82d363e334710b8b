package countries

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ethanbaker/analyzer/internal/logging"
	"github.com/ethanbaker/analyzer/internal/metrics"
	"github.com/robfig/cron/v3"
)

// SummaryFileName is the name of the rendered summary inside the cache directory
const SummaryFileName = "summary.png"

// scheduledTimeout bounds a refresh started by the cron schedule
const scheduledTimeout = 2 * time.Minute

// Refresher pulls remote country data into the store and renders the summary image
type Refresher struct {
	store  StoreInterface
	source Source
	opts   *RefresherOptions

	// Concurrency
	mutex  sync.Mutex // serializes refreshes
	ctx    context.Context
	cancel context.CancelFunc

	// Scheduling
	cron *cron.Cron
}

// RefresherOptions contains configuration options for the Refresher
type RefresherOptions struct {
	Store  StoreInterface `yaml:"-"`
	Source Source         `yaml:"-"`

	CacheDir      string `yaml:"cache_dir"`      // Directory holding the summary image
	MinMultiplier int    `yaml:"min_multiplier"` // Lower bound of the GDP multiplier
	MaxMultiplier int    `yaml:"max_multiplier"` // Upper bound of the GDP multiplier

	Multiplier func(min, max int) int `yaml:"-"` // Optional, uniform random in [min, max] by default
	Now        func() time.Time       `yaml:"-"` // Optional, time.Now by default
}

// NewRefresher creates a new refresher
func NewRefresher(opts *RefresherOptions) (*Refresher, error) {
	if opts == nil || opts.Store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("a valid source must be provided")
	}
	if opts.MinMultiplier <= 0 || opts.MaxMultiplier < opts.MinMultiplier {
		return nil, fmt.Errorf("invalid gdp multiplier range [%d, %d]", opts.MinMultiplier, opts.MaxMultiplier)
	}
	if opts.Multiplier == nil {
		opts.Multiplier = func(min, max int) int {
			return min + rand.IntN(max-min+1)
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Refresher{
		store:  opts.Store,
		source: opts.Source,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		cron:   cron.New(),
	}, nil
}

// Schedule runs a refresh on the given cron spec. An empty spec disables scheduling.
func (r *Refresher) Schedule(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}

	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(r.ctx, scheduledTimeout)
		defer cancel()

		if _, err := r.refresh(ctx, "schedule"); err != nil {
			logging.Warn().Err(err).Msg("[COUNTRIES]: scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule '%s': %w", spec, err)
	}

	r.cron.Start()
	logging.Info().Str("spec", spec).Msg("[COUNTRIES]: refresh scheduled")
	return nil
}

// Stop halts the schedule and cancels any scheduled refresh in flight
func (r *Refresher) Stop() {
	r.cancel()
	<-r.cron.Stop().Done()
}

// ImagePath returns where the summary image is written
func (r *Refresher) ImagePath() string {
	return filepath.Join(r.opts.CacheDir, SummaryFileName)
}

// Refresh fetches both sources, upserts every usable country and renders the summary
func (r *Refresher) Refresh(ctx context.Context) (*RefreshResult, error) {
	return r.refresh(ctx, "manual")
}

// refresh runs a single refresh, labelling metrics with the trigger
func (r *Refresher) refresh(ctx context.Context, trigger string) (*RefreshResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result, err := r.run(ctx)
	if err != nil {
		label := "error"
		if errors.Is(err, ErrUpstreamUnavailable) {
			label = "upstream_unavailable"
		}
		metrics.CountryRefreshes.WithLabelValues(trigger, label).Inc()
		return nil, err
	}

	metrics.CountryRefreshes.WithLabelValues(trigger, "success").Inc()
	logging.Info().
		Str("trigger", trigger).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("[COUNTRIES]: refresh complete")
	return result, nil
}

// run does the work of a refresh (called with mutex held)
func (r *Refresher) run(ctx context.Context) (*RefreshResult, error) {
	remote, err := r.source.FetchCountries(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := r.source.FetchRates(ctx)
	if err != nil {
		return nil, err
	}

	now := r.opts.Now().UTC()
	result := &RefreshResult{RefreshedAt: now}

	for _, rc := range remote {
		name := strings.TrimSpace(rc.Name)
		if name == "" || rc.Population <= 0 {
			result.Skipped++
			continue
		}

		country := &Country{
			Name:            name,
			Capital:         rc.Capital,
			Region:          rc.Region,
			Population:      rc.Population,
			CurrencyCode:    rc.CurrencyCode(),
			FlagURL:         rc.Flag,
			LastRefreshedAt: now,
		}
		if country.CurrencyCode != nil {
			if rate, ok := rates[*country.CurrencyCode]; ok {
				country.ExchangeRate = &rate
			}
		}
		country.EstimatedGDP = EstimateGDP(country.Population, country.ExchangeRate, r.opts.Multiplier(r.opts.MinMultiplier, r.opts.MaxMultiplier))

		if err := r.store.Upsert(ctx, country); err != nil {
			return nil, fmt.Errorf("failed to store country '%s': %w", name, err)
		}
		result.Updated++
	}

	status, err := r.store.Status(ctx)
	if err != nil {
		return nil, err
	}
	metrics.CountriesCached.Set(float64(status.TotalCountries))

	top, err := r.store.List(ctx, ListOptions{SortByGDP: true, Limit: 5})
	if err != nil {
		return nil, err
	}

	summary := Summary{TotalCountries: status.TotalCountries, RefreshedAt: now, Top: top}
	if err := WriteSummary(r.ImagePath(), summary); err != nil {
		logging.Warn().Err(err).Str("path", r.ImagePath()).Msg("[COUNTRIES]: failed to render summary image")
	} else {
		result.ImagePath = r.ImagePath()
	}

	return result, nil
}
