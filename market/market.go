package market

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weekend closure rules.
const (
	// StandardWeekend closes the market all of saturday and sunday.
	StandardWeekend = "standard"
	// FuturesWeekend closes the market for a single rolling gap from
	// friday close to sunday open (cme style near-continuous trading).
	FuturesWeekend = "futures"
)

const (
	// minutesPerDay is the number of minutes in a calendar day.
	minutesPerDay = 1440
)

// Market represents the immutable configuration of a tracked exchange.
type Market struct {
	// Name is the display name of the exchange.
	Name string `yaml:"name"`
	// Timezone is the IANA timezone identifier of the exchange.
	Timezone string `yaml:"timezone"`
	// LocalOpen is the open time in minutes since local midnight.
	LocalOpen int `yaml:"localopen"`
	// LocalClose is the close time in minutes since local midnight.
	LocalClose int `yaml:"localclose"`
	// WeekendRule is the weekend closure rule for the exchange.
	WeekendRule string `yaml:"weekendrule"`
	// Color is the display color of the exchange.
	Color string `yaml:"color"`
}

// Validate asserts the market has sane inputs.
func (m *Market) Validate() error {
	var errs error

	if m.Name == "" {
		errs = errors.Join(errs, fmt.Errorf("market name cannot be an empty string"))
	}
	if m.Timezone == "" {
		errs = errors.Join(errs, fmt.Errorf("%s: timezone cannot be an empty string", m.Name))
	}
	if m.LocalOpen < 0 || m.LocalOpen >= minutesPerDay {
		errs = errors.Join(errs, fmt.Errorf("%s: local open %d out of range [0,%d)", m.Name, m.LocalOpen, minutesPerDay))
	}
	if m.LocalClose < 0 || m.LocalClose >= minutesPerDay {
		errs = errors.Join(errs, fmt.Errorf("%s: local close %d out of range [0,%d)", m.Name, m.LocalClose, minutesPerDay))
	}
	switch m.WeekendRule {
	case StandardWeekend, FuturesWeekend:
		// do nothing.
	default:
		errs = errors.Join(errs, fmt.Errorf("%s: unknown weekend rule: %s", m.Name, m.WeekendRule))
	}

	return errs
}

// DefaultRoster returns the built-in roster of tracked exchanges.
func DefaultRoster() []Market {
	return []Market{
		{Name: "Sydney", Timezone: "Australia/Sydney", LocalOpen: 600, LocalClose: 960, WeekendRule: StandardWeekend, Color: "#60A5FA"},
		{Name: "Shanghai", Timezone: "Asia/Shanghai", LocalOpen: 570, LocalClose: 900, WeekendRule: StandardWeekend, Color: "#F87171"},
		{Name: "Shenzhen", Timezone: "Asia/Shanghai", LocalOpen: 570, LocalClose: 900, WeekendRule: StandardWeekend, Color: "#FB923C"},
		{Name: "Hong Kong", Timezone: "Asia/Hong_Kong", LocalOpen: 570, LocalClose: 960, WeekendRule: StandardWeekend, Color: "#FBBF24"},
		{Name: "Tokyo", Timezone: "Asia/Tokyo", LocalOpen: 540, LocalClose: 900, WeekendRule: StandardWeekend, Color: "#818CF8"},
		{Name: "Frankfurt", Timezone: "Europe/Berlin", LocalOpen: 480, LocalClose: 1080, WeekendRule: StandardWeekend, Color: "#A78BFA"},
		{Name: "London", Timezone: "Europe/London", LocalOpen: 480, LocalClose: 990, WeekendRule: StandardWeekend, Color: "#34D399"},
		{Name: "New York", Timezone: "America/New_York", LocalOpen: 570, LocalClose: 960, WeekendRule: StandardWeekend, Color: "#60A5FA"},
		{Name: "CME", Timezone: "America/Chicago", LocalOpen: 1020, LocalClose: 960, WeekendRule: FuturesWeekend, Color: "#EC4899"},
	}
}

// LoadRoster loads the market roster from the provided yaml filepath. An empty
// filepath loads the built-in default roster.
func LoadRoster(path string) ([]Market, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var roster []Market
	err = yaml.Unmarshal(data, &roster)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling roster: %w", err)
	}

	if len(roster) == 0 {
		return nil, fmt.Errorf("no markets provided by roster file %s", path)
	}

	var errs error
	for idx := range roster {
		errs = errors.Join(errs, roster[idx].Validate())
	}
	if errs != nil {
		return nil, fmt.Errorf("validating roster: %w", errs)
	}

	return roster, nil
}

// Timezones returns the deduplicated set of timezones used by the provided
// roster, preserving roster order.
func Timezones(roster []Market) []string {
	seen := make(map[string]bool, len(roster))
	timezones := make([]string, 0, len(roster))
	for idx := range roster {
		if seen[roster[idx].Timezone] {
			continue
		}

		seen[roster[idx].Timezone] = true
		timezones = append(timezones, roster[idx].Timezone)
	}

	return timezones
}
