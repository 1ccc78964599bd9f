package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/avendal/marketclock/holiday"
	"github.com/avendal/marketclock/market"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

// unreachableSource fails every fetch, forcing the cache onto its static
// fallback table.
type unreachableSource struct{}

func (s *unreachableSource) FetchCountryHolidays(ctx context.Context, country string, year int) ([]holiday.RawHoliday, error) {
	return nil, fmt.Errorf("fetching holidays for %s: connection refused", country)
}

func newTestClock(t *testing.T) *Clock {
	t.Helper()

	logger := zerolog.Nop()
	roster := market.DefaultRoster()

	cache, err := holiday.NewCache(&holiday.CacheConfig{
		Timezones: market.Timezones(roster),
		Source:    &unreachableSource{},
		Logger:    &logger,
	})
	assert.NoError(t, err)

	clock, err := NewClock(&ClockConfig{
		Markets: roster,
		Cache:   cache,
		Logger:  &logger,
	})
	assert.NoError(t, err)

	return clock
}

func findMarket(t *testing.T, clock *Clock, name string) *market.Market {
	t.Helper()

	for idx := range clock.cfg.Markets {
		if clock.cfg.Markets[idx].Name == name {
			return &clock.cfg.Markets[idx]
		}
	}

	t.Fatalf("no market found with name %s", name)
	return nil
}

func TestClockConfigValidate(t *testing.T) {
	logger := zerolog.Nop()

	cfg := ClockConfig{}
	assert.Error(t, cfg.Validate())

	cfg = ClockConfig{Markets: market.DefaultRoster(), Logger: &logger}
	assert.Error(t, cfg.Validate())
}

func TestResolveStatus(t *testing.T) {
	clock := newTestClock(t)
	newYork := findMarket(t, clock, "New York")

	tests := []struct {
		name       string
		instant    time.Time
		wantOpen   bool
		wantReason string
	}{
		{
			name:     "weekday within window",
			instant:  time.Date(2025, time.July, 2, 15, 0, 0, 0, time.UTC),
			wantOpen: true,
		},
		{
			name:       "weekday outside window",
			instant:    time.Date(2025, time.July, 2, 2, 0, 0, 0, time.UTC),
			wantOpen:   false,
			wantReason: ClosedSession,
		},
		{
			name:       "independence day closure",
			instant:    time.Date(2025, time.July, 4, 15, 0, 0, 0, time.UTC),
			wantOpen:   false,
			wantReason: ClosedHoliday,
		},
		{
			name:       "saturday closure",
			instant:    time.Date(2025, time.July, 5, 15, 0, 0, 0, time.UTC),
			wantOpen:   false,
			wantReason: ClosedWeekend,
		},
	}

	for _, test := range tests {
		status := clock.ResolveStatus(newYork, test.instant)
		if status.Open != test.wantOpen {
			t.Errorf("%s: expected open=%v, got %v", test.name, test.wantOpen, status.Open)
		}
		if status.Reason != test.wantReason {
			t.Errorf("%s: expected reason %q, got %q", test.name, test.wantReason, status.Reason)
		}
	}
}

func TestResolveStatusMidnightSpan(t *testing.T) {
	clock := newTestClock(t)
	cme := findMarket(t, clock, "CME")

	// Wednesday evening chicago time falls inside the overnight session.
	status := clock.ResolveStatus(cme, time.Date(2025, time.July, 2, 23, 30, 0, 0, time.UTC))
	assert.True(t, status.Open)

	// The window itself spans utc midnight.
	assert.True(t, status.Window.Open > status.Window.Close)

	// Friday evening chicago time is inside the rolling weekend gap even
	// though the utc minute falls within the overnight window.
	status = clock.ResolveStatus(cme, time.Date(2025, time.July, 11, 23, 30, 0, 0, time.UTC))
	assert.False(t, status.Open)
	assert.Equal(t, ClosedWeekend, status.Reason)

	// Sunday evening chicago time reopens the market.
	status = clock.ResolveStatus(cme, time.Date(2025, time.July, 13, 23, 30, 0, 0, time.UTC))
	assert.True(t, status.Open)
}

func TestResolveStatusAlwaysOpen(t *testing.T) {
	clock := newTestClock(t)

	// Equal open and close times denote trading around the clock.
	continuous := market.Market{
		Name:        "Continuous",
		Timezone:    "Europe/London",
		LocalOpen:   480,
		LocalClose:  480,
		WeekendRule: market.StandardWeekend,
	}

	status := clock.ResolveStatus(&continuous, time.Date(2025, time.July, 2, 3, 0, 0, 0, time.UTC))
	assert.True(t, status.Open)
}

func TestLoadHolidays(t *testing.T) {
	clock := newTestClock(t)

	// The handle completes via static fallback despite every fetch failing,
	// and redundant triggers are safe.
	ctx := context.Background()
	<-clock.LoadHolidays(ctx)
	<-clock.LoadHolidays(ctx)

	status := clock.ResolveStatus(findMarket(t, clock, "New York"),
		time.Date(2025, time.December, 25, 15, 0, 0, 0, time.UTC))
	assert.False(t, status.Open)
	assert.Equal(t, ClosedHoliday, status.Reason)
}
