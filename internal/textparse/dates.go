package textparse

import (
	"regexp"
	"strconv"
	"time"
)

var (
	fullDateRe  = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})`)
	shortDateRe = regexp.MustCompile(`^(\d{2})\.(\d{1,2})\.(\d{1,2})`)
	monthDayRe  = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})`)
	relativeRe  = regexp.MustCompile(`(\d+)\s*(분|시간|일|주|달|개월|년)\s*전`)
)

// relativeUnits maps the platform's relative-time units to durations.
// 달/개월 use a fixed 30-day month, 년 a fixed 365-day year, matching the
// source display logic rather than calendar arithmetic.
var relativeUnits = map[string]time.Duration{
	"분":  time.Minute,
	"시간": time.Hour,
	"일":  24 * time.Hour,
	"주":  7 * 24 * time.Hour,
	"달":  30 * 24 * time.Hour,
	"개월": 30 * 24 * time.Hour,
	"년":  365 * 24 * time.Hour,
}

// ParseListingDate parses the date strings the source platform emits:
//
//	"2026.01.31."  dotted, 4-digit year
//	"25.3.21.금"   dotted, 2-digit year (assumed 2000+)
//	"1.22.목"      month.day (assumed now's year)
//	"3일 전"       relative phrase, N minutes/hours/days/weeks/months/years ago
//
// Unparseable strings return ok=false, never an error.
func ParseListingDate(s string, now time.Time) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if m := fullDateRe.FindStringSubmatch(s); m != nil {
		return dateOf(atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location()), true
	}
	if m := shortDateRe.FindStringSubmatch(s); m != nil {
		return dateOf(2000+atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location()), true
	}
	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		return dateOf(now.Year(), atoi(m[1]), atoi(m[2]), now.Location()), true
	}
	if m := relativeRe.FindStringSubmatch(s); m != nil {
		unit, known := relativeUnits[m[2]]
		if !known {
			unit = 24 * time.Hour
		}
		return now.Add(-time.Duration(atoi(m[1])) * unit), true
	}

	return time.Time{}, false
}

// DaysSince returns the whole days elapsed from the parsed date to now,
// or ok=false when the string cannot be parsed.
func DaysSince(s string, now time.Time) (int, bool) {
	d, ok := ParseListingDate(s, now)
	if !ok {
		return 0, false
	}
	return int(now.Sub(d).Hours() / 24), true
}

func dateOf(year, month, day int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
