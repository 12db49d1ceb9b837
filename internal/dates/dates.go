// Package dates handles calendar dates (as opposed to timestamps) the way
// the log entries use them: ISO formatted, process-local calendar days.
package dates

import "time"

const Layout = "2006-01-02"

func Today() string {
	return time.Now().Format(Layout)
}

// WindowStart returns the first date (inclusive) of a lookback window of
// the given number of days, counting back from today.
func WindowStart(days int) string {
	return time.Now().AddDate(0, 0, -days).Format(Layout)
}

func Valid(date string) bool {
	_, err := time.Parse(Layout, date)
	return err == nil
}
