package booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/fitdesk/scheduling-api/internal/models"
)

// Slot is a candidate bookable interval within a trainer's availability.
// Times are "15:04" strings in the business timezone.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
}

func parseHM(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CandidateSlots walks each active pattern from its start time in steps of
// the slot duration, discarding partial trailing slots. Slots produced by
// overlapping patterns are de-duplicated by interval equality and the
// result is returned in chronological order.
func CandidateSlots(patterns []models.AvailabilityPattern) []Slot {
	type interval struct{ start, end int }

	seen := make(map[interval]bool)
	var out []Slot

	for _, p := range patterns {
		if !p.Active {
			continue
		}

		start, ok := parseHM(p.StartTime)
		if !ok {
			continue
		}
		end, ok := parseHM(p.EndTime)
		if !ok {
			continue
		}

		dur := p.SlotDurationMin
		if dur <= 0 {
			dur = 60
		}

		for cur := start; cur+dur <= end; cur += dur {
			iv := interval{cur, cur + dur}
			if seen[iv] {
				continue
			}
			seen[iv] = true
			out = append(out, Slot{
				StartTime: formatHM(iv.start),
				EndTime:   formatHM(iv.end),
				Duration:  dur,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].EndTime < out[j].EndTime
	})

	return out
}

// FilterBooked drops candidate slots whose interval intersects any booked
// appointment. The date anchors the slots to absolute time; booked must
// already exclude cancelled appointments.
func FilterBooked(slots []Slot, date time.Time, booked []models.Appointment) []Slot {
	loc := date.Location()

	at := func(hm string) time.Time {
		m, _ := parseHM(hm)
		return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
	}

	var free []Slot
	for _, s := range slots {
		slotStart := at(s.StartTime)
		slotEnd := at(s.EndTime)

		conflict := false
		for _, ap := range booked {
			if Overlaps(slotStart, slotEnd, ap.StartDatetime, ap.EndDatetime) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, s)
		}
	}

	return free
}
