package service

import "time"

// nowOr calls fn, or time.Now when no clock was injected.
func nowOr(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return time.Now()
}

// locationOr defaults a nil location to time.Local.
func locationOr(loc *time.Location) *time.Location {
	if loc != nil {
		return loc
	}
	return time.Local
}

// startOfDay is local midnight of the day containing t.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
