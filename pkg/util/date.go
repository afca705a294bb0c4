package util

import (
	"strconv"
	"time"
)

// DateLayout is the wire format of every date the dashboard handles.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD. Returns (t, true) on success.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTime tries YYYY-MM-DD, RFC3339 and unix seconds, in that order.
// Upstream rows sometimes carry full timestamps.
func ParseTime(s string) (time.Time, bool) {
	if t, ok := ParseDate(s); ok {
		return t, true
	}
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// YearsBefore returns the date n calendar years before t. Like
// time.AddDate, Feb 29 rolls over to Mar 1 in non-leap years.
func YearsBefore(t time.Time, n int) time.Time {
	return t.AddDate(-n, 0, 0)
}

// DateRange returns [today-n years, today] as YYYY-MM-DD strings.
func DateRange(now time.Time, years int) (start, end string) {
	return FormatDate(YearsBefore(now, years)), FormatDate(now)
}
