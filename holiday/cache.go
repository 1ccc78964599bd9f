package holiday

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// timezoneCountry maps exchange timezones to the country codes of the remote
// holiday source. Timezones absent here (cn, hk) have no remote coverage and
// resolve directly from the static table.
var timezoneCountry = map[string]string{
	"America/New_York": "US",
	"America/Chicago":  "US",
	"Europe/London":    "GB",
	"Europe/Berlin":    "DE",
	"Asia/Tokyo":       "JP",
	"Australia/Sydney": "AU",
}

// CacheConfig represents the configuration for the holiday cache.
type CacheConfig struct {
	// Timezones represents the tracked exchange timezones.
	Timezones []string
	// Source fetches raw holiday records per country and year.
	Source CountrySource
	// Now returns the current time, defaulting to time.Now when unset.
	Now func() time.Time
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *CacheConfig) Validate() error {
	var errs error

	if len(cfg.Timezones) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no timezones provided for holiday cache"))
	}
	if cfg.Source == nil {
		errs = errors.Join(errs, fmt.Errorf("holiday source cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Cache holds resolved holiday sets per (timezone, year) key, populated
// asynchronously by bulk loads. Entries are inserted whole and never mutated
// afterwards, so readers either miss and fall back to static data or observe
// a fully populated set.
type Cache struct {
	cfg     *CacheConfig
	mtx     sync.RWMutex
	entries map[string]map[string]bool
	loading chan struct{}
}

// NewCache initializes a new holiday cache.
func NewCache(cfg *CacheConfig) (*Cache, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating holiday cache config: %w", err)
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Cache{
		cfg:     cfg,
		entries: make(map[string]map[string]bool),
	}, nil
}

// cacheKey forms the cache key for the provided timezone and year.
func cacheKey(timezone string, year int) string {
	return timezone + "-" + strconv.Itoa(year)
}

// has checks whether the provided key has been resolved.
func (c *Cache) has(key string) bool {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	_, ok := c.entries[key]
	return ok
}

// put resolves the provided key with the provided holiday set.
func (c *Cache) put(key string, dates map[string]bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.entries[key] = dates
}

// Load triggers a bulk holiday load for all tracked timezones, returning a
// handle that is closed once every reachable entry has been resolved, either
// from the remote source or via static fallback. Concurrent callers observe
// the same in-flight load rather than issuing duplicate fetches. A trigger
// after completion starts a fresh load which skips already resolved keys.
func (c *Cache) Load(ctx context.Context) <-chan struct{} {
	c.mtx.Lock()
	if c.loading != nil {
		done := c.loading
		c.mtx.Unlock()
		return done
	}

	done := make(chan struct{})
	c.loading = done
	c.mtx.Unlock()

	go func() {
		c.load(ctx)

		c.mtx.Lock()
		c.loading = nil
		c.mtx.Unlock()

		close(done)
	}()

	return done
}

// load populates the cache for the current year. Timezones sharing a country
// issue exactly one fetch, fanned out per distinct country and independently
// settled so one country's failure cannot affect another's resolution.
func (c *Cache) load(ctx context.Context) {
	id := uuid.New().String()
	year := c.cfg.Now().Year()

	// Group unresolved timezones by country. Timezones with no remote mapping
	// resolve immediately from the static table.
	groups := make(map[string][]string)
	for _, timezone := range c.cfg.Timezones {
		key := cacheKey(timezone, year)
		if c.has(key) {
			continue
		}

		country, ok := timezoneCountry[timezone]
		if !ok {
			c.put(key, StaticHolidays(timezone, year))
			continue
		}

		groups[country] = append(groups[country], timezone)
	}

	if len(groups) == 0 {
		return
	}

	c.cfg.Logger.Info().Str("load", id).Msgf("fetching holidays for %d countries, year %d", len(groups), year)

	var wg sync.WaitGroup
	for country, timezones := range groups {
		wg.Add(1)
		go func(country string, timezones []string) {
			defer wg.Done()

			records, err := c.cfg.Source.FetchCountryHolidays(ctx, country, year)
			if err != nil {
				c.cfg.Logger.Warn().Str("load", id).Msgf("fetching holidays for %s, using static fallback: %v", country, err)
				for _, timezone := range timezones {
					c.put(cacheKey(timezone, year), StaticHolidays(timezone, year))
				}
				return
			}

			dates := Normalize(country, records, year)
			for _, timezone := range timezones {
				set := make(map[string]bool, len(dates))
				for _, date := range dates {
					set[date] = true
				}
				c.put(cacheKey(timezone, year), set)
			}
		}(country, timezones)
	}

	wg.Wait()

	c.cfg.Logger.Info().Str("load", id).Msg("holiday load complete")
}

// localDate formats the provided instant as an iso date in the provided
// timezone. Timezone resolution failure degrades to utc formatting, reported
// as a warning rather than silently diverging.
func (c *Cache) localDate(timezone string, instant time.Time) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		c.cfg.Logger.Warn().Msgf("resolving timezone %s, formatting date in utc: %v", timezone, err)
		return instant.UTC().Format(DateLayout)
	}

	return instant.In(loc).Format(DateLayout)
}

// IsHoliday checks whether the provided instant falls on an exchange holiday
// for the provided timezone, resolving the date in the exchange's own
// timezone. Unresolved keys fall back to the static table synchronously; the
// check never blocks on a load.
func (c *Cache) IsHoliday(timezone string, instant time.Time) bool {
	date := c.localDate(timezone, instant)

	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return false
	}

	c.mtx.RLock()
	dates, ok := c.entries[cacheKey(timezone, year)]
	c.mtx.RUnlock()
	if ok {
		return dates[date]
	}

	return IsStaticHoliday(timezone, date)
}
