package scheduling

import (
	"reflect"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func window(t *testing.T, start, end string) Window {
	return Window{Start: mustClock(t, start), End: mustClock(t, end)}
}

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func settings(policy OverlapPolicy) Settings {
	return Settings{
		DefaultLocation: time.UTC,
		Now:             fixedClock(time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)),
		Policy:          policy,
	}
}

func TestAvailableSlots_MondayMorning(t *testing.T) {
	s := settings(OverlapInterval)
	slots := s.AvailableSlots(monday, time.UTC, []Window{window(t, "09:00", "10:00")}, 30*time.Minute, nil)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}

	want := []struct{ start, end, display string }{
		{"2024-01-01T09:00:00Z", "2024-01-01T09:30:00Z", "09:00 AM"},
		{"2024-01-01T09:30:00Z", "2024-01-01T10:00:00Z", "09:30 AM"},
	}
	for i, w := range want {
		got := slots[i]
		if got.Start.Format(time.RFC3339) != w.start || got.End.Format(time.RFC3339) != w.end {
			t.Fatalf("slot %d: got %s-%s, want %s-%s", i, got.Start.Format(time.RFC3339), got.End.Format(time.RFC3339), w.start, w.end)
		}
		if got.Display != w.display {
			t.Fatalf("slot %d: display %q, want %q", i, got.Display, w.display)
		}
		if got.DurationMinutes != 30 {
			t.Fatalf("slot %d: duration %d, want 30", i, got.DurationMinutes)
		}
	}
}

func TestAvailableSlots_ExcludesBookedSlot(t *testing.T) {
	booked := []time.Time{time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	for _, policy := range []OverlapPolicy{OverlapInterval, OverlapContainment} {
		t.Run(string(policy), func(t *testing.T) {
			s := settings(policy)
			slots := s.AvailableSlots(monday, time.UTC, []Window{window(t, "09:00", "10:00")}, 30*time.Minute, booked)

			if len(slots) != 1 {
				t.Fatalf("expected 1 slot, got %d", len(slots))
			}
			if got := slots[0].Start.Format("15:04"); got != "09:30" {
				t.Fatalf("expected remaining slot at 09:30, got %s", got)
			}
		})
	}
}

func TestAvailableSlots_OverlapPolicies(t *testing.T) {
	// A booking at 09:15 straddles both 30-minute slots.
	booked := []time.Time{time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)}
	w := []Window{window(t, "09:00", "10:00")}

	interval := settings(OverlapInterval).AvailableSlots(monday, time.UTC, w, 30*time.Minute, booked)
	if len(interval) != 0 {
		t.Fatalf("interval policy: expected no slots, got %d", len(interval))
	}

	containment := settings(OverlapContainment).AvailableSlots(monday, time.UTC, w, 30*time.Minute, booked)
	if len(containment) != 1 || containment[0].Start.Format("15:04") != "09:30" {
		t.Fatalf("containment policy: expected only 09:30, got %+v", containment)
	}
}

func TestAvailableSlots_IntervalIsHalfOpen(t *testing.T) {
	// Booking ending exactly when the next slot begins does not block it.
	booked := []time.Time{time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)}
	slots := settings(OverlapInterval).AvailableSlots(monday, time.UTC, []Window{window(t, "09:00", "10:00")}, 30*time.Minute, booked)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestAvailableSlots_NoOverlapWithBookings(t *testing.T) {
	w := []Window{window(t, "08:00", "17:00")}
	booked := []time.Time{
		time.Date(2024, 1, 1, 9, 10, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 16, 59, 0, 0, time.UTC),
	}
	d := 45 * time.Minute

	for _, policy := range []OverlapPolicy{OverlapInterval, OverlapContainment} {
		s := settings(policy)
		for _, slot := range s.AvailableSlots(monday, time.UTC, w, d, booked) {
			for _, b := range booked {
				if policy.blocks(slot.Start, slot.End, b, d) {
					t.Fatalf("%s: slot %s overlaps booking %s", policy, slot.Start, b)
				}
			}
		}
	}
}

func TestAvailableSlots_WindowLengths(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration time.Duration
		want     []string
	}{
		{"exactly one slot", "09:00", "09:30", 30 * time.Minute, []string{"09:00-09:30"}},
		{"shorter than slot", "09:00", "09:20", 30 * time.Minute, nil},
		{"remainder dropped", "09:00", "10:10", 30 * time.Minute, []string{"09:00-09:30", "09:30-10:00"}},
		{"degenerate window", "10:00", "09:00", 30 * time.Minute, nil},
		{"zero duration uses default", "09:00", "10:00", 0, []string{"09:00-09:30", "09:30-10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings(OverlapInterval)
			slots := s.AvailableSlots(monday, time.UTC, []Window{window(t, tt.start, tt.end)}, tt.duration, nil)

			var got []string
			for _, slot := range slots {
				got = append(got, slot.Start.Format("15:04")+"-"+slot.End.Format("15:04"))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableSlots_DropsPastSlots(t *testing.T) {
	s := settings(OverlapInterval)
	s.Now = fixedClock(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))

	slots := s.AvailableSlots(monday, time.UTC, []Window{window(t, "09:00", "11:00")}, 30*time.Minute, nil)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	now := s.Now()
	for _, slot := range slots {
		if !slot.End.After(now) {
			t.Fatalf("slot ending %s is not after now %s", slot.End, now)
		}
	}

	// A slot in progress is still offered.
	s.Now = fixedClock(time.Date(2024, 1, 1, 9, 29, 0, 0, time.UTC))
	slots = s.AvailableSlots(monday, time.UTC, []Window{window(t, "09:00", "10:00")}, 30*time.Minute, nil)
	if len(slots) != 2 {
		t.Fatalf("expected in-progress slot to remain, got %d slots", len(slots))
	}
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	s := settings(OverlapInterval)
	w := []Window{window(t, "13:00", "15:00"), window(t, "09:00", "10:00")}
	booked := []time.Time{time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC)}

	first := s.AvailableSlots(monday, time.UTC, w, 30*time.Minute, booked)
	second := s.AvailableSlots(monday, time.UTC, w, 30*time.Minute, booked)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("outputs differ:\n%v\n%v", first, second)
	}
}

func TestAvailableSlots_ChronologicalAcrossWindows(t *testing.T) {
	s := settings(OverlapInterval)
	w := []Window{window(t, "13:00", "14:00"), window(t, "09:00", "10:00")}

	slots := s.AvailableSlots(monday, time.UTC, w, 30*time.Minute, nil)
	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].Start) {
			t.Fatalf("slots out of order at %d: %s before %s", i, slots[i].Start, slots[i-1].Start)
		}
	}
}

func TestAvailableSlots_ViewerTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	s := settings(OverlapInterval)
	slots := s.AvailableSlots(monday, ny, []Window{window(t, "09:00", "10:00")}, 30*time.Minute, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if got := slots[0].Start.UTC().Format(time.RFC3339); got != "2024-01-01T14:00:00Z" {
		t.Fatalf("expected 14:00 UTC, got %s", got)
	}
	if slots[0].Display != "09:00 AM" {
		t.Fatalf("expected viewer-local display, got %q", slots[0].Display)
	}
}

func TestAvailableSlots_AfternoonDisplay(t *testing.T) {
	s := settings(OverlapInterval)
	slots := s.AvailableSlots(monday, time.UTC, []Window{window(t, "13:00", "13:45")}, 45*time.Minute, nil)
	if len(slots) != 1 || slots[0].Display != "01:00 PM" || slots[0].DurationMinutes != 45 {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func TestParseOverlapPolicy(t *testing.T) {
	tests := map[string]OverlapPolicy{
		"":             OverlapInterval,
		"interval":     OverlapInterval,
		" Containment": OverlapContainment,
	}
	for in, want := range tests {
		got, err := ParseOverlapPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseOverlapPolicy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseOverlapPolicy("exact"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
