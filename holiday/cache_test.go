package holiday

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

// fakeSource is a country source with per-country canned records, injectable
// failures and call counting.
type fakeSource struct {
	mtx     sync.Mutex
	calls   map[string]int
	fail    map[string]bool
	records map[string][]RawHoliday
	delay   time.Duration
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls: make(map[string]int),
		fail:  make(map[string]bool),
		records: map[string][]RawHoliday{
			"US": {
				{Date: "2025-11-27", Name: "Thanksgiving Day", LocalName: "Thanksgiving Day"},
				{Date: "2025-12-25", Name: "Christmas Day", LocalName: "Christmas Day"},
			},
			"GB": {
				{Date: "2025-05-05", Name: "Early May Bank Holiday", Global: true},
			},
			"JP": {
				{Date: "2025-09-23", Name: "Autumnal Equinox", Global: true},
			},
			"AU": {
				{Date: "2025-04-25", Name: "Anzac Day", Global: true},
			},
			"DE": {
				{Date: "2025-06-09", Name: "Whit Monday", Global: true},
			},
		},
	}
}

func (s *fakeSource) FetchCountryHolidays(ctx context.Context, country string, year int) ([]RawHoliday, error) {
	s.mtx.Lock()
	s.calls[country]++
	s.mtx.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if s.failing(country) {
		return nil, fmt.Errorf("fetching holidays for %s: unexpected status 503", country)
	}

	return s.records[country], nil
}

func (s *fakeSource) failing(country string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.fail[country]
}

func (s *fakeSource) callCount(country string) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.calls[country]
}

// fixedNow pins the cache's clock to mid 2025.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
}

func newTestCache(t *testing.T, source CountrySource, timezones []string) *Cache {
	t.Helper()

	logger := zerolog.Nop()
	cache, err := NewCache(&CacheConfig{
		Timezones: timezones,
		Source:    source,
		Now:       fixedNow,
		Logger:    &logger,
	})
	assert.NoError(t, err)

	return cache
}

func TestCacheConfigValidate(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewCache(&CacheConfig{Logger: &logger})
	assert.Error(t, err)

	_, err = NewCache(&CacheConfig{Timezones: []string{"Asia/Tokyo"}, Source: newFakeSource(), Logger: &logger})
	assert.NoError(t, err)
}

func TestLoadDeduplicatesFetches(t *testing.T) {
	source := newFakeSource()
	source.delay = time.Millisecond * 50

	// New york and cme share the us feed; shanghai has no remote mapping.
	cache := newTestCache(t, source, []string{
		"America/New_York", "America/Chicago", "Europe/London", "Asia/Tokyo", "Asia/Shanghai",
	})

	// Two concurrent triggers observe the same in-flight load.
	first := cache.Load(context.Background())
	second := cache.Load(context.Background())
	if first != second {
		t.Fatal("expected concurrent triggers to share the same load handle")
	}

	<-first
	<-second

	// Exactly one fetch per distinct country, none for the unmapped timezone.
	assert.Equal(t, 1, source.callCount("US"))
	assert.Equal(t, 1, source.callCount("GB"))
	assert.Equal(t, 1, source.callCount("JP"))
	assert.Equal(t, 0, source.callCount("CN"))

	// The unmapped timezone resolved from the static table without a fetch.
	assert.True(t, cache.IsHoliday("Asia/Shanghai", time.Date(2025, time.October, 1, 6, 0, 0, 0, time.UTC)))

	// A redundant trigger after completion skips resolved entries.
	<-cache.Load(context.Background())
	assert.Equal(t, 1, source.callCount("US"))
	assert.Equal(t, 1, source.callCount("GB"))
}

func TestLoadNormalizesFetchedRecords(t *testing.T) {
	source := newFakeSource()
	cache := newTestCache(t, source, []string{"America/New_York", "America/Chicago"})

	<-cache.Load(context.Background())

	// Fetched us records are normalized, with good friday forced in.
	thanksgiving := time.Date(2025, time.November, 27, 15, 0, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("America/New_York", thanksgiving))
	assert.True(t, cache.IsHoliday("America/Chicago", thanksgiving))

	goodFriday := time.Date(2025, time.April, 18, 15, 0, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("America/New_York", goodFriday))

	// Independence day is absent from the fetched feed, and fetched entries
	// are authoritative over the static table.
	independence := time.Date(2025, time.July, 4, 15, 0, 0, 0, time.UTC)
	assert.False(t, cache.IsHoliday("America/New_York", independence))
}

func TestLoadIsolatesPartialFailure(t *testing.T) {
	source := newFakeSource()
	source.fail["GB"] = true

	cache := newTestCache(t, source, []string{"America/New_York", "Europe/London", "Europe/Berlin"})

	<-cache.Load(context.Background())

	// The failed country resolved via the static table.
	summerBank := time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("Europe/London", summerBank))

	// Other countries resolved from their fetches unaffected.
	thanksgiving := time.Date(2025, time.November, 27, 15, 0, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("America/New_York", thanksgiving))

	whitMonday := time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("Europe/Berlin", whitMonday))

	// Fallback entries are terminal; a later trigger does not refetch them.
	<-cache.Load(context.Background())
	assert.Equal(t, 1, source.callCount("GB"))
	assert.Equal(t, 1, source.callCount("US"))
}

func TestIsHolidayNeverBlocks(t *testing.T) {
	source := newFakeSource()
	source.delay = time.Second * 5

	cache := newTestCache(t, source, []string{"America/New_York"})

	// No load has been triggered; the query resolves from the static table
	// without waiting on the network.
	start := time.Now()
	open := cache.IsHoliday("America/New_York", time.Date(2025, time.July, 4, 15, 0, 0, 0, time.UTC))
	assert.True(t, open)
	assert.LessThanOrEqual(t, time.Since(start).Milliseconds(), int64(100))

	assert.False(t, cache.IsHoliday("America/New_York", time.Date(2025, time.July, 7, 15, 0, 0, 0, time.UTC)))
}

func TestIsHolidayUsesMarketTimezone(t *testing.T) {
	source := newFakeSource()
	cache := newTestCache(t, source, []string{"America/New_York", "Australia/Sydney"})

	// Late on july 4th utc it is still the 4th in new york but already the
	// 5th in sydney.
	instant := time.Date(2025, time.July, 4, 23, 30, 0, 0, time.UTC)
	assert.True(t, cache.IsHoliday("America/New_York", instant))
	assert.False(t, cache.IsHoliday("Australia/Sydney", instant))
}

func TestIsHolidayUnknownTimezone(t *testing.T) {
	source := newFakeSource()
	cache := newTestCache(t, source, []string{"America/New_York"})

	// An unresolvable timezone degrades to utc date formatting and an empty
	// static set.
	assert.False(t, cache.IsHoliday("Nowhere/Atlantis", fixedNow()))
}
