package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avendal/marketclock/holiday"
	"github.com/avendal/marketclock/market"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

const (
	// refreshTime is the daily time the holiday load is re-triggered,
	// covering the year rollover. The load itself skips resolved entries.
	refreshTime = "00:05"
	// defaultStatusInterval is the default interval for status snapshots.
	defaultStatusInterval = time.Minute
)

// Closure reasons reported for a closed market.
const (
	// ClosedSession indicates the current time is outside the trading window.
	ClosedSession = "session"
	// ClosedWeekend indicates a weekend closure per the market's weekend rule.
	ClosedWeekend = "weekend"
	// ClosedHoliday indicates a public holiday closure.
	ClosedHoliday = "holiday"
)

// Status represents the resolved instantaneous state of a market.
type Status struct {
	// Open indicates the market is currently trading.
	Open bool
	// Reason is the closure reason when the market is closed.
	Reason string
	// Window is the market's utc trading window for the queried instant.
	Window market.UTCWindow
}

// ClockConfig represents the configuration for the market clock service.
type ClockConfig struct {
	// Markets represents the tracked market roster.
	Markets []market.Market
	// Cache represents the holiday cache.
	Cache *holiday.Cache
	// StatusInterval is the interval between status snapshots.
	StatusInterval time.Duration
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *ClockConfig) Validate() error {
	var errs error

	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for clock service"))
	}
	if cfg.Cache == nil {
		errs = errors.Join(errs, fmt.Errorf("holiday cache cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Clock resolves the instantaneous open or closed state of every tracked
// market, combining the trading window, weekend rule and holiday calendar
// verdicts. Each dependency degrades independently; no query returns an error.
type Clock struct {
	cfg          *ClockConfig
	jobScheduler *gocron.Scheduler
	wg           sync.WaitGroup
}

// NewClock initializes a new market clock service.
func NewClock(cfg *ClockConfig) (*Clock, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating clock config: %w", err)
	}

	if cfg.StatusInterval == 0 {
		cfg.StatusInterval = defaultStatusInterval
	}

	return &Clock{
		cfg:          cfg,
		jobScheduler: gocron.NewScheduler(time.UTC),
	}, nil
}

// ResolveStatus resolves the provided market's state at the provided instant.
// The market is open iff the instant is within the utc trading window, not
// weekend-closed and not a holiday in the market's own timezone.
func (c *Clock) ResolveStatus(mkt *market.Market, instant time.Time) Status {
	window := market.Window(mkt, instant)

	if !market.WithinWindow(window.Open, window.Close, market.UTCMinuteOfDay(instant)) {
		return Status{Reason: ClosedSession, Window: window}
	}

	info, ok := market.ResolveLocalInfo(mkt.Timezone, instant)
	if ok && market.WeekendClosed(mkt, info) {
		return Status{Reason: ClosedWeekend, Window: window}
	}

	if c.cfg.Cache.IsHoliday(mkt.Timezone, instant) {
		return Status{Reason: ClosedHoliday, Window: window}
	}

	return Status{Open: true, Window: window}
}

// LoadHolidays triggers a bulk holiday load, returning a handle that is
// closed once all reachable holiday data has been resolved. Safe to invoke
// redundantly.
func (c *Clock) LoadHolidays(ctx context.Context) <-chan struct{} {
	return c.cfg.Cache.Load(ctx)
}

// logStatuses logs a status snapshot for every tracked market.
func (c *Clock) logStatuses(now time.Time) {
	for idx := range c.cfg.Markets {
		mkt := &c.cfg.Markets[idx]
		status := c.ResolveStatus(mkt, now)

		event := c.cfg.Logger.Info().
			Str("market", mkt.Name).
			Bool("open", status.Open).
			Int("openutc", status.Window.Open).
			Int("closeutc", status.Window.Close)
		if !status.Open {
			event = event.Str("reason", status.Reason)
		}

		event.Msg("market status")
	}
}

// Run handles the lifecycle processes of the market clock service.
func (c *Clock) Run(ctx context.Context) {
	// Kick off the initial holiday load and re-trigger it daily to cover the
	// year rollover.
	c.LoadHolidays(ctx)

	_, err := c.jobScheduler.Every(1).Day().At(refreshTime).Do(func() {
		c.LoadHolidays(context.Background())
	})
	if err != nil {
		c.cfg.Logger.Error().Msgf("scheduling holiday refresh: %v", err)
	}

	c.jobScheduler.StartAsync()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(c.cfg.StatusInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.logStatuses(now)
			}
		}
	}()

	c.wg.Wait()
	c.jobScheduler.Stop()
}
