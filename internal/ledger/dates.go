package ledger

import "time"

// today returns the current calendar date at midnight UTC. Borrow, due and
// return dates are all stored at this granularity so date comparisons are
// exact.
func today() time.Time {
	return startOfDay(time.Now().UTC())
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
