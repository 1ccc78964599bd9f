package market

// WithinWindow checks whether the provided utc minute of day falls within the
// half-open trading window [open, close). A window whose close is numerically
// less than its open spans utc midnight. Equal open and close times denote a
// market trading around the clock.
func WithinWindow(openUTC int, closeUTC int, nowUTC int) bool {
	switch {
	case openUTC == closeUTC:
		return true
	case openUTC > closeUTC:
		return nowUTC >= openUTC || nowUTC < closeUTC
	default:
		return nowUTC >= openUTC && nowUTC < closeUTC
	}
}
