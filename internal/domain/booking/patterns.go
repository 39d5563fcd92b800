package booking

import (
	"fmt"

	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

// ValidatePatterns checks a full replacement set of weekly patterns for one
// trainer: well-formed times, day range, and no two active patterns for the
// same day overlapping.
func ValidatePatterns(patterns []models.AvailabilityPattern) error {
	type window struct{ start, end int }
	byDay := make(map[int][]window)

	for _, p := range patterns {
		if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
			return httperr.Validation("invalid_day_of_week", fmt.Sprintf("day_of_week %d out of range", p.DayOfWeek))
		}

		start, ok := parseHM(p.StartTime)
		if !ok {
			return httperr.Validation("invalid_start_time", "start_time must be HH:MM")
		}
		end, ok := parseHM(p.EndTime)
		if !ok {
			return httperr.Validation("invalid_end_time", "end_time must be HH:MM")
		}
		if end < start {
			return httperr.Validation("invalid_time_range", "end_time before start_time")
		}
		if p.SlotDurationMin < 0 {
			return httperr.Validation("invalid_slot_duration", "slot_duration_min must be positive")
		}

		if !p.Active {
			continue
		}
		for _, w := range byDay[p.DayOfWeek] {
			if overlapsMinutes(start, end, w.start, w.end) {
				return httperr.Conflict("overlapping_patterns",
					fmt.Sprintf("availability patterns overlap on day %d", p.DayOfWeek))
			}
		}
		byDay[p.DayOfWeek] = append(byDay[p.DayOfWeek], window{start, end})
	}

	return nil
}
