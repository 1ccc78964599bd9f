package market

import (
	"time"
)

// LocalInfo represents the day of week and minutes since midnight resolved in
// a market's own timezone.
type LocalInfo struct {
	// Day is the local day of the week.
	Day time.Weekday
	// Minutes is the local minutes since midnight.
	Minutes int
}

// ResolveLocalInfo resolves the provided instant to the day of week and
// minutes since midnight in the provided timezone. The returned flag is false
// when the timezone cannot be resolved; callers treat that as not
// weekend-closed since the trading window check remains authoritative.
func ResolveLocalInfo(timezone string, instant time.Time) (LocalInfo, bool) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return LocalInfo{}, false
	}

	local := instant.In(loc)
	return LocalInfo{
		Day:     local.Weekday(),
		Minutes: local.Hour()*60 + local.Minute(),
	}, true
}

// WeekendClosed checks whether the provided market is closed for the weekend
// at the provided local day and time, per its weekend rule.
func WeekendClosed(mkt *Market, info LocalInfo) bool {
	if mkt.WeekendRule == FuturesWeekend {
		switch info.Day {
		case time.Saturday:
			return true
		case time.Sunday:
			// Closed until the local open time is reached.
			return info.Minutes < mkt.LocalOpen
		case time.Friday:
			// Closed from the local close time onward.
			return info.Minutes >= mkt.LocalClose
		default:
			return false
		}
	}

	return info.Day == time.Saturday || info.Day == time.Sunday
}
