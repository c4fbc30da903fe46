package utils

import (
	"strings"
	"time"
)

// ISODate is the calendar date layout accepted for trip start dates.
const ISODate = "2006-01-02"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// ParseISODate parses a YYYY-MM-DD calendar date in UTC.
func ParseISODate(value string) (time.Time, error) {
	return time.ParseInLocation(ISODate, strings.TrimSpace(value), time.UTC)
}

// FormatDisplayDate renders a date for itinerary headings, e.g. "Sat, 01 Jun 2024".
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, 02 Jan 2006")
}

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
