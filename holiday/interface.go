package holiday

import (
	"context"
)

// CountrySource defines the requirements for fetching raw holiday records for
// a country and year.
type CountrySource interface {
	// FetchCountryHolidays fetches the raw public holiday records for the
	// provided country and year.
	FetchCountryHolidays(ctx context.Context, country string, year int) ([]RawHoliday, error)
}
