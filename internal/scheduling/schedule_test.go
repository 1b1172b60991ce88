package scheduling

import (
	"testing"
	"time"
)

func TestSchedule_CanonicalWithoutFormData(t *testing.T) {
	canonical := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)

	s := NewSchedule(canonical, map[string]any{"selected_date": "2024-01-01"})
	if s.Authored != nil {
		t.Fatal("date without time must not produce an authored schedule")
	}
	if got := s.Resolve(time.UTC); !got.Equal(canonical) {
		t.Fatalf("expected canonical instant, got %s", got)
	}
}

func TestSchedule_AuthoredInFormTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	canonical := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	form := map[string]any{
		"selected_date": "2024-01-02",
		"selected_time": "09:30",
		"time_zone":     "Asia/Tokyo",
	}

	got := NewSchedule(canonical, form).Resolve(time.UTC)
	want := time.Date(2024, 1, 2, 9, 30, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestSchedule_AuthoredFallsBackToGivenZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	form := map[string]any{
		"selected_date": "2024-01-02",
		"selected_time": "09:30:00",
		"timezone":      "Not/AZone",
	}

	got := NewSchedule(time.Time{}, form).Resolve(ny)
	if got.UTC().Format(time.RFC3339) != "2024-01-02T14:30:00Z" {
		t.Fatalf("unexpected instant %s", got.UTC().Format(time.RFC3339))
	}
}

func TestSchedule_ExplicitOffsetWins(t *testing.T) {
	form := map[string]any{
		"selected_date": "2024-01-02",
		"selected_time": "09:30:00+02:00",
		"timeZone":      "America/New_York",
	}

	got := NewSchedule(time.Time{}, form).Resolve(time.UTC)
	if got.UTC().Format(time.RFC3339) != "2024-01-02T07:30:00Z" {
		t.Fatalf("unexpected instant %s", got.UTC().Format(time.RFC3339))
	}
}

func TestSchedule_UnparsableFallsBackToCanonical(t *testing.T) {
	canonical := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	form := map[string]any{
		"selected_date": "next tuesday",
		"selected_time": "after lunch",
	}

	if got := NewSchedule(canonical, form).Resolve(time.UTC); !got.Equal(canonical) {
		t.Fatalf("expected canonical fallback, got %s", got)
	}
}

func TestTimezoneHint_KeyPrecedence(t *testing.T) {
	form := map[string]any{
		"timeZone":  "Asia/Tokyo",
		"time_zone": "Europe/Paris",
		"timezone":  42,
	}
	if got := TimezoneHint(form); got != "Europe/Paris" {
		t.Fatalf("expected Europe/Paris, got %q", got)
	}
}
