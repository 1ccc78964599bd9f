package holiday

import (
	"sort"
	"strings"
	"time"
)

const (
	// DateLayout is the iso layout used for holiday dates.
	DateLayout = "2006-01-02"
)

// Subdivision codes for markets that follow a national calendar restricted to
// one constituent region.
const (
	// englandSubdivision restricts the gb calendar to english bank holidays.
	englandSubdivision = "GB-ENG"
	// nswSubdivision restricts the au calendar to new south wales holidays.
	nswSubdivision = "AU-NSW"
)

// nyseKeywords matches the holidays the us exchanges actually observe. Not
// all public holidays are exchange holidays, eg columbus day and veterans day
// are public holidays but the exchanges remain open.
var nyseKeywords = []string{
	"new year",
	"martin luther king",
	"washington",
	"president",
	"good friday",
	"memorial",
	"juneteenth",
	"independence",
	"labor",
	"labour",
	"thanksgiving",
	"christmas",
}

// RawHoliday represents a single record from the remote holiday feed.
type RawHoliday struct {
	// Date is the iso (yyyy-mm-dd) date of the holiday.
	Date string
	// Name is the english name of the holiday.
	Name string
	// LocalName is the local language name of the holiday.
	LocalName string
	// Global indicates the holiday applies countrywide.
	Global bool
	// Counties lists the subdivision codes the holiday is restricted to.
	Counties []string
}

// normalizeFunc transforms a raw per-country holiday list for one calendar
// year into the canonical set of observed iso dates.
type normalizeFunc func(records []RawHoliday, year int) []string

// normalizers maps country codes to their normalization policies.
var normalizers = map[string]normalizeFunc{
	"US": normalizeUS,
	"GB": func(records []RawHoliday, year int) []string {
		return filterSubdivision(records, englandSubdivision)
	},
	"AU": func(records []RawHoliday, year int) []string {
		return filterSubdivision(records, nswSubdivision)
	},
	"JP": normalizeJP,
}

// Normalize transforms the provided raw holiday records for the provided
// country and year into the canonical sorted set of observed iso dates.
// Malformed records are excluded. Countries without a dedicated policy pass
// through unfiltered.
func Normalize(country string, records []RawHoliday, year int) []string {
	normalize, ok := normalizers[country]
	if !ok {
		normalize = passthrough
	}

	return normalize(records, year)
}

// validDate reports whether the provided date string parses as an iso date.
func validDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// weekday reports whether the provided iso date falls on a weekday. Malformed
// dates report false.
func weekday(date string) bool {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}

	return day.Weekday() != time.Saturday && day.Weekday() != time.Sunday
}

// nextDay returns the iso date immediately following the provided one.
func nextDay(date string) string {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}

	return day.AddDate(0, 0, 1).Format(DateLayout)
}

// sortedDates flattens the provided date set into a sorted slice.
func sortedDates(dates map[string]bool) []string {
	sorted := make([]string, 0, len(dates))
	for date := range dates {
		sorted = append(sorted, date)
	}

	sort.Strings(sorted)
	return sorted
}

// passthrough keeps all well-formed records, used when the raw feed already
// matches exchange observance exactly.
func passthrough(records []RawHoliday, _ int) []string {
	dates := make(map[string]bool, len(records))
	for idx := range records {
		if validDate(records[idx].Date) {
			dates[records[idx].Date] = true
		}
	}

	return sortedDates(dates)
}

// normalizeUS keeps only the holidays the us exchanges observe and force
// includes good friday, which is a market closure but not a civil holiday in
// the source feed.
func normalizeUS(records []RawHoliday, year int) []string {
	dates := make(map[string]bool, len(records))
	for idx := range records {
		if !validDate(records[idx].Date) {
			continue
		}

		combined := strings.ToLower(records[idx].Name + " " + records[idx].LocalName)
		for _, keyword := range nyseKeywords {
			if strings.Contains(combined, keyword) {
				dates[records[idx].Date] = true
				break
			}
		}
	}

	dates[GoodFriday(year)] = true

	return sortedDates(dates)
}

// filterSubdivision keeps a record iff it is marked global, has no subdivision
// restriction, or explicitly lists the target subdivision code.
func filterSubdivision(records []RawHoliday, subdivision string) []string {
	dates := make(map[string]bool, len(records))
	for idx := range records {
		if !validDate(records[idx].Date) {
			continue
		}

		keep := records[idx].Global || len(records[idx].Counties) == 0
		if !keep {
			for _, county := range records[idx].Counties {
				if county == subdivision {
					keep = true
					break
				}
			}
		}

		if keep {
			dates[records[idx].Date] = true
		}
	}

	return sortedDates(dates)
}

// normalizeJP resolves the substitute-holiday conventions of the japanese
// calendar the raw feed may miss. When multiple holidays collapse onto one
// date the extras cascade to the following free weekdays, and a lone weekday
// sandwiched between two holidays becomes a holiday itself. Cascade runs
// before sandwich.
func normalizeJP(records []RawHoliday, _ int) []string {
	dates := make(map[string]bool, len(records))
	counts := make(map[string]int, len(records))
	for idx := range records {
		if !validDate(records[idx].Date) {
			continue
		}

		dates[records[idx].Date] = true
		counts[records[idx].Date]++
	}

	// Cascade: for dates carrying multiple observances, assign the extras to
	// the earliest following weekdays not already holidays, walking forward
	// one day at a time.
	for _, date := range sortedDates(dates) {
		count := counts[date]
		cursor := date
		for added := 0; added < count-1; {
			cursor = nextDay(cursor)
			if weekday(cursor) && !dates[cursor] {
				dates[cursor] = true
				added++
			}
		}
	}

	// Sandwich: a lone weekday between two holidays exactly two calendar days
	// apart becomes a holiday.
	sorted := sortedDates(dates)
	for idx := 0; idx < len(sorted)-1; idx++ {
		between := nextDay(sorted[idx])
		if nextDay(between) == sorted[idx+1] && weekday(between) {
			dates[between] = true
		}
	}

	return sortedDates(dates)
}

// GoodFriday computes the iso date of good friday for the provided year using
// the anonymous gregorian easter algorithm (easter sunday minus two days).
func GoodFriday(year int) string {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	easter := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return easter.AddDate(0, 0, -2).Format(DateLayout)
}
