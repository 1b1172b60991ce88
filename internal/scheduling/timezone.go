package scheduling

import (
	"fmt"
	"strings"
	"time"
	// zone database compiled in, so lookups do not depend on the host
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

// ResolveLocation loads an IANA zone by name. Unknown or empty names yield
// fallback (UTC when fallback is nil) and ok=false; it never fails.
func ResolveLocation(name string, fallback *time.Location) (*time.Location, bool) {
	if fallback == nil {
		fallback = time.UTC
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, false
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback, false
	}
	return loc, true
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC
// and only its year, month and day are meaningful.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// Weekday returns the day index of date with Monday as 0 and Sunday as 6.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// DayRange returns [start of day, start of day + 24h) for the calendar date
// in loc.
func DayRange(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour, Minute, Second int
}

// ParseClock accepts "15:04:05" and "15:04".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time of day %q", s)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (c Clock) Before(o Clock) bool {
	return c.seconds() < o.seconds()
}

// On places the clock on the calendar date in loc.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, c.Second, 0, loc)
}
