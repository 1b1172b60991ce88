// Package scheduling turns recurring weekly availability into concrete,
// bookable time slots. Everything here is pure: the clock, the default
// timezone and the overlap policy are supplied through Settings.
package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSlotDuration is used when a page has no duration configured.
const DefaultSlotDuration = 30 * time.Minute

// DisplayLayout is the 12-hour label attached to every slot.
const DisplayLayout = "03:04 PM"

// OverlapPolicy decides when an existing booking blocks a candidate slot.
type OverlapPolicy string

const (
	// OverlapInterval treats a booking as [instant, instant+duration) and
	// blocks every slot intersecting it.
	OverlapInterval OverlapPolicy = "interval"
	// OverlapContainment blocks a slot only when the booking instant falls
	// inside [slot start, slot end).
	OverlapContainment OverlapPolicy = "containment"
)

func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch p := OverlapPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", OverlapInterval:
		return OverlapInterval, nil
	case OverlapContainment:
		return OverlapContainment, nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q", s)
	}
}

func (p OverlapPolicy) blocks(slotStart, slotEnd, booked time.Time, duration time.Duration) bool {
	if p == OverlapContainment {
		return !booked.Before(slotStart) && booked.Before(slotEnd)
	}
	return slotStart.Before(booked.Add(duration)) && slotEnd.After(booked)
}

// Settings carries the process-wide inputs of the resolver.
type Settings struct {
	DefaultLocation *time.Location
	Now             func() time.Time
	Policy          OverlapPolicy
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Location returns the configured server timezone, UTC when unset.
func (s Settings) Location() *time.Location {
	if s.DefaultLocation == nil {
		return time.UTC
	}
	return s.DefaultLocation
}
