package scheduling

import (
	"slices"
	"time"
)

// Window is one availability window on the requested date.
type Window struct {
	Start Clock
	End   Clock
}

type Slot struct {
	Start           time.Time
	End             time.Time
	Display         string
	DurationMinutes int
}

// AvailableSlots tiles every window with consecutive slots of duration,
// starting at the window start. A trailing remainder shorter than duration
// is dropped, as are slots already over and slots blocked by a booking
// under the configured overlap policy. Windows are not merged.
func (s Settings) AvailableSlots(date time.Time, loc *time.Location, windows []Window, duration time.Duration, booked []time.Time) []Slot {
	if loc == nil {
		loc = s.Location()
	}
	if duration <= 0 {
		duration = DefaultSlotDuration
	}

	now := s.now()
	slots := make([]Slot, 0)

	for _, w := range windows {
		start := w.Start.On(date, loc)
		end := w.End.On(date, loc)

		for cur := start; !cur.Add(duration).After(end); cur = cur.Add(duration) {
			slotEnd := cur.Add(duration)
			if !slotEnd.After(now) {
				continue
			}
			if s.isBooked(cur, slotEnd, booked, duration) {
				continue
			}

			slots = append(slots, Slot{
				Start:           cur,
				End:             slotEnd,
				Display:         cur.In(loc).Format(DisplayLayout),
				DurationMinutes: int(duration / time.Minute),
			})
		}
	}

	slices.SortStableFunc(slots, func(a, b Slot) int {
		return a.Start.Compare(b.Start)
	})
	return slots
}

func (s Settings) isBooked(start, end time.Time, booked []time.Time, duration time.Duration) bool {
	for _, b := range booked {
		if s.Policy.blocks(start, end, b, duration) {
			return true
		}
	}
	return false
}
