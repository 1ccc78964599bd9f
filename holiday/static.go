package holiday

import (
	"strconv"
	"strings"
)

// staticHolidays is the build-time fallback table of exchange holidays per
// timezone, covering 2024 through 2026. It is consulted whenever a timezone
// has no remote mapping or its fetch fails. Gaps yield "not a holiday" since
// the window and weekend checks remain authoritative.
var staticHolidays = map[string][]string{
	// NYSE, NASDAQ.
	"America/New_York": {
		"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
		"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
		"2025-01-01", "2025-01-20", "2025-02-17", "2025-04-18", "2025-05-26",
		"2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27", "2025-12-25",
		"2026-01-01", "2026-01-19", "2026-02-16", "2026-04-03", "2026-05-25",
		"2026-06-19", "2026-07-03", "2026-09-07", "2026-11-26", "2026-12-25",
	},
	// CME, observes the same closures as the us equity exchanges.
	"America/Chicago": {
		"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
		"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
		"2025-01-01", "2025-01-20", "2025-02-17", "2025-04-18", "2025-05-26",
		"2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27", "2025-12-25",
		"2026-01-01", "2026-01-19", "2026-02-16", "2026-04-03", "2026-05-25",
		"2026-06-19", "2026-07-03", "2026-09-07", "2026-11-26", "2026-12-25",
	},
	// London stock exchange.
	"Europe/London": {
		"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-06", "2024-05-27",
		"2024-08-26", "2024-12-25", "2024-12-26",
		"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-05", "2025-05-26",
		"2025-08-25", "2025-12-25", "2025-12-26",
		"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-04", "2026-05-25",
		"2026-08-31", "2026-12-25", "2026-12-28",
	},
	// Frankfurt stock exchange.
	"Europe/Berlin": {
		"2024-01-01", "2024-03-29", "2024-04-01", "2024-05-01", "2024-05-09",
		"2024-05-20", "2024-12-25", "2024-12-26",
		"2025-01-01", "2025-04-18", "2025-04-21", "2025-05-01", "2025-05-29",
		"2025-06-09", "2025-12-25", "2025-12-26",
		"2026-01-01", "2026-04-03", "2026-04-06", "2026-05-01", "2026-05-14",
		"2026-05-25", "2026-12-25", "2026-12-26",
	},
	// Shanghai and shenzhen stock exchanges.
	"Asia/Shanghai": {
		"2024-01-01", "2024-02-10", "2024-02-11", "2024-02-12", "2024-02-13",
		"2024-02-14", "2024-02-15", "2024-02-16", "2024-04-04", "2024-04-05",
		"2024-04-06", "2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04",
		"2024-05-05", "2024-06-10", "2024-09-15", "2024-09-16", "2024-09-17",
		"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-05",
		"2024-10-06", "2024-10-07",
		"2025-01-01", "2025-01-29", "2025-01-30", "2025-01-31", "2025-02-01",
		"2025-02-02", "2025-02-03", "2025-02-04", "2025-04-07", "2025-05-01",
		"2025-05-02", "2025-05-03", "2025-05-05", "2025-06-11", "2025-10-01",
		"2025-10-02", "2025-10-03", "2025-10-04", "2025-10-05", "2025-10-06",
		"2025-10-07",
		"2026-01-01", "2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19",
		"2026-02-20", "2026-04-05", "2026-04-06", "2026-05-01", "2026-05-02",
		"2026-05-03", "2026-05-31", "2026-10-01", "2026-10-02", "2026-10-03",
		"2026-10-04", "2026-10-05", "2026-10-06", "2026-10-07",
	},
	// Hong kong stock exchange.
	"Asia/Hong_Kong": {
		"2024-01-01", "2024-02-10", "2024-02-13", "2024-02-14", "2024-03-29",
		"2024-03-30", "2024-04-01", "2024-04-04", "2024-05-01", "2024-06-10",
		"2024-09-18", "2024-10-11", "2024-12-25",
		"2025-01-01", "2025-01-29", "2025-01-30", "2025-02-03", "2025-04-04",
		"2025-04-11", "2025-04-12", "2025-04-14", "2025-05-01", "2025-06-02",
		"2025-10-01", "2025-10-11", "2025-12-25",
		"2026-01-01", "2026-02-17", "2026-02-18", "2026-02-19", "2026-04-03",
		"2026-04-04", "2026-04-05", "2026-04-06", "2026-05-01", "2026-05-31",
		"2026-07-01", "2026-10-01", "2026-10-19", "2026-12-25",
	},
	// Tokyo stock exchange.
	"Asia/Tokyo": {
		"2024-01-01", "2024-01-08", "2024-02-11", "2024-02-12", "2024-02-23",
		"2024-03-20", "2024-04-29", "2024-05-03", "2024-05-04", "2024-05-05",
		"2024-05-06", "2024-07-15", "2024-08-11", "2024-09-16", "2024-09-22",
		"2024-09-23", "2024-10-14", "2024-11-03", "2024-11-04", "2024-11-23",
		"2025-01-01", "2025-01-13", "2025-02-11", "2025-02-23", "2025-02-24",
		"2025-03-20", "2025-04-29", "2025-05-03", "2025-05-04", "2025-05-05",
		"2025-05-06", "2025-07-21", "2025-08-11", "2025-09-15", "2025-09-23",
		"2025-10-13", "2025-11-03", "2025-11-23",
		"2026-01-01", "2026-01-12", "2026-02-11", "2026-02-23", "2026-03-20",
		"2026-04-29", "2026-05-04", "2026-05-05", "2026-05-06", "2026-07-20",
		"2026-08-11", "2026-09-21", "2026-09-22", "2026-09-23", "2026-10-12",
		"2026-11-03", "2026-11-23",
	},
	// Australian securities exchange.
	"Australia/Sydney": {
		"2024-01-01", "2024-01-26", "2024-03-11", "2024-03-29", "2024-03-30",
		"2024-04-25", "2024-06-10", "2024-12-25", "2024-12-26",
		"2025-01-01", "2025-01-27", "2025-04-25", "2025-06-09", "2025-12-25",
		"2025-12-26",
		"2026-01-01", "2026-01-26", "2026-04-03", "2026-04-04", "2026-04-06",
		"2026-06-08", "2026-12-25", "2026-12-28",
	},
}

// StaticHolidays returns the static fallback holiday set for the provided
// timezone restricted to the provided year. Unknown timezones and uncovered
// years yield an empty set.
func StaticHolidays(timezone string, year int) map[string]bool {
	prefix := strconv.Itoa(year) + "-"
	dates := make(map[string]bool)
	for _, date := range staticHolidays[timezone] {
		if strings.HasPrefix(date, prefix) {
			dates[date] = true
		}
	}

	return dates
}

// IsStaticHoliday checks whether the provided iso date is a holiday for the
// provided timezone in the static fallback table.
func IsStaticHoliday(timezone string, date string) bool {
	for _, holiday := range staticHolidays[timezone] {
		if holiday == date {
			return true
		}
	}

	return false
}
