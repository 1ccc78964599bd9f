package market

import (
	"time"
)

// UTCWindow represents a market's trading window in minutes since utc
// midnight, derived for a specific reference instant.
type UTCWindow struct {
	// Open is the open time in minutes since utc midnight.
	Open int
	// Close is the close time in minutes since utc midnight.
	Close int
}

// OffsetMinutes returns the signed utc offset (east positive) in minutes in
// effect for the provided timezone at the provided instant, accounting for
// daylight saving time. An unknown timezone identifier degrades to offset 0,
// proceeding with utc.
func OffsetMinutes(timezone string, instant time.Time) int {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0
	}

	_, offsetSeconds := instant.In(loc).Zone()
	return offsetSeconds / 60
}

// floorMod normalizes the provided value into [0, m) using floored modulo,
// never returning a negative result.
func floorMod(value int, m int) int {
	return ((value % m) + m) % m
}

// ToUTCMinutes converts local minutes since midnight to utc minutes since
// midnight given the signed utc offset.
func ToUTCMinutes(localMinutes int, offsetMinutes int) int {
	return floorMod(localMinutes-offsetMinutes, minutesPerDay)
}

// ToLocalMinutes converts utc minutes since midnight to local minutes since
// midnight given the signed utc offset.
func ToLocalMinutes(utcMinutes int, offsetMinutes int) int {
	return floorMod(utcMinutes+offsetMinutes, minutesPerDay)
}

// Window derives the provided market's utc trading window for the provided
// instant. The window is recomputed per query since the utc offset depends on
// the date.
func Window(mkt *Market, instant time.Time) UTCWindow {
	offset := OffsetMinutes(mkt.Timezone, instant)
	return UTCWindow{
		Open:  ToUTCMinutes(mkt.LocalOpen, offset),
		Close: ToUTCMinutes(mkt.LocalClose, offset),
	}
}

// UTCMinuteOfDay returns the provided instant's minutes since utc midnight.
func UTCMinuteOfDay(instant time.Time) int {
	utc := instant.UTC()
	return utc.Hour()*60 + utc.Minute()
}
