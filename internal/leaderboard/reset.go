package leaderboard

import "time"

// DayLayout formats a calendar day the way browsers print Date.toDateString(),
// e.g. "Wed Oct 14 2026". Existing documents store lastReset in this form.
const DayLayout = "Mon Jan 02 2006"

// DayKey returns the calendar day of t in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// NeedsReset reports whether a board last reset on lastReset must be cleared
// on the day containing now. A lastReset later than today never resets, so
// the stored day never moves backward. Unparseable values are stale.
func NeedsReset(lastReset string, now time.Time) bool {
	if lastReset == DayKey(now) {
		return false
	}
	last, err := time.ParseInLocation(DayLayout, lastReset, now.Location())
	if err != nil {
		return true
	}
	y, m, d := now.Date()
	return last.Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
}

// ApplyReset clears d's scores and advances lastReset when the day changed.
// It returns true if d was modified.
func ApplyReset(d *Data, now time.Time) bool {
	if !NeedsReset(d.Settings.LastReset, now) {
		return false
	}
	d.Scores = []ScoreEntry{}
	d.Settings.LastReset = DayKey(now)
	return true
}
