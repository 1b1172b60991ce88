package scheduling

import (
	"strings"
	"time"
)

// Authored is the date and time the attendee picked on the booking form,
// as they typed it.
type Authored struct {
	Date     string
	Time     string
	Timezone string
}

// Schedule is the instant a booking should be shown at: the canonical
// stored instant, unless the form data carries an authored date and time.
type Schedule struct {
	Canonical time.Time
	Authored  *Authored
}

var timezoneKeys = []string{"timezone", "time_zone", "timeZone"}

// NewSchedule reads selected_date, selected_time and the timezone hint out
// of the booking form data.
func NewSchedule(canonical time.Time, form map[string]any) Schedule {
	s := Schedule{Canonical: canonical}

	date := formString(form, "selected_date")
	clock := formString(form, "selected_time")
	if date == "" || clock == "" {
		return s
	}

	s.Authored = &Authored{Date: date, Time: clock, Timezone: TimezoneHint(form)}
	return s
}

// TimezoneHint returns the first non-empty timezone key of the form data.
func TimezoneHint(form map[string]any) string {
	for _, key := range timezoneKeys {
		if v := formString(form, key); v != "" {
			return v
		}
	}
	return ""
}

func formString(form map[string]any, key string) string {
	v, ok := form[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Resolve returns the instant to display. An authored value without an
// explicit offset is read in its timezone hint, falling back to authoredIn.
// Values that do not parse fall back to the canonical instant.
func (s Schedule) Resolve(authoredIn *time.Location) time.Time {
	if s.Authored == nil {
		return s.Canonical
	}

	loc, _ := ResolveLocation(s.Authored.Timezone, authoredIn)
	if t, ok := parseAuthored(s.Authored.Date, s.Authored.Time, loc); ok {
		return t
	}
	return s.Canonical
}

var (
	offsetLayouts = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04Z07:00"}
	localLayouts  = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
)

func parseAuthored(date, clock string, loc *time.Location) (time.Time, bool) {
	value := date + "T" + clock

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
