package booking

import (
	"testing"
	"time"

	"github.com/fitdesk/scheduling-api/internal/models"
)

func pattern(day int, start, end string, dur int) models.AvailabilityPattern {
	return models.AvailabilityPattern{
		DayOfWeek:       day,
		StartTime:       start,
		EndTime:         end,
		SlotDurationMin: dur,
		Active:          true,
	}
}

func TestCandidateSlotsWalksPattern(t *testing.T) {
	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "12:00", 60),
	})

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	want := []Slot{
		{StartTime: "09:00", EndTime: "10:00", Duration: 60},
		{StartTime: "10:00", EndTime: "11:00", Duration: 60},
		{StartTime: "11:00", EndTime: "12:00", Duration: 60},
	}
	for i, s := range slots {
		if s != want[i] {
			t.Fatalf("slot %d: got %+v, want %+v", i, s, want[i])
		}
	}
}

func TestCandidateSlotsDiscardsPartialTrailingSlot(t *testing.T) {
	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "10:30", 60),
	})

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].EndTime != "10:00" {
		t.Fatalf("expected slot to end at 10:00, got %s", slots[0].EndTime)
	}
}

func TestCandidateSlotsEmptyWindow(t *testing.T) {
	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "09:00", 60),
	})

	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestCandidateSlotsDeduplicatesOverlappingPatterns(t *testing.T) {
	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "11:00", 60),
		pattern(1, "10:00", "12:00", 60),
	})

	if len(slots) != 3 {
		t.Fatalf("expected 3 unique slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime <= slots[i-1].StartTime {
			t.Fatalf("slots out of order: %s after %s", slots[i].StartTime, slots[i-1].StartTime)
		}
	}
}

func TestCandidateSlotsSkipsInactivePatterns(t *testing.T) {
	p := pattern(1, "09:00", "12:00", 60)
	p.Active = false

	if slots := CandidateSlots([]models.AvailabilityPattern{p}); len(slots) != 0 {
		t.Fatalf("expected inactive pattern to yield no slots, got %d", len(slots))
	}
}

func TestCandidateSlotsIsDeterministic(t *testing.T) {
	patterns := []models.AvailabilityPattern{
		pattern(1, "14:00", "16:00", 30),
		pattern(1, "09:00", "11:00", 30),
	}

	first := CandidateSlots(patterns)
	for i := 0; i < 5; i++ {
		again := CandidateSlots(patterns)
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d slots, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d slot %d: got %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestFilterBookedDropsOverlaps(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "12:00", 60),
	})

	booked := []models.Appointment{
		{
			StartDatetime: time.Date(2026, 3, 2, 9, 30, 0, 0, loc),
			EndDatetime:   time.Date(2026, 3, 2, 10, 30, 0, 0, loc),
		},
	}

	free := FilterBooked(slots, date, booked)
	if len(free) != 1 {
		t.Fatalf("expected 1 free slot, got %d", len(free))
	}
	if free[0].StartTime != "11:00" {
		t.Fatalf("expected 11:00 to stay free, got %s", free[0].StartTime)
	}
}

func TestFilterBookedBackToBackIsNotAConflict(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	slots := CandidateSlots([]models.AvailabilityPattern{
		pattern(1, "09:00", "11:00", 60),
	})

	// Ends exactly when the second slot starts; half-open intervals touch
	// without overlapping.
	booked := []models.Appointment{
		{
			StartDatetime: time.Date(2026, 3, 2, 9, 0, 0, 0, loc),
			EndDatetime:   time.Date(2026, 3, 2, 10, 0, 0, 0, loc),
		},
	}

	free := FilterBooked(slots, date, booked)
	if len(free) != 1 {
		t.Fatalf("expected 1 free slot, got %d", len(free))
	}
	if free[0].StartTime != "10:00" {
		t.Fatalf("expected 10:00 to stay free, got %s", free[0].StartTime)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	if Overlaps(h(0), h(1), h(1), h(2)) {
		t.Fatal("touching intervals must not overlap")
	}
	if !Overlaps(h(0), h(2), h(1), h(3)) {
		t.Fatal("intersecting intervals must overlap")
	}
	if !Overlaps(h(0), h(3), h(1), h(2)) {
		t.Fatal("contained interval must overlap")
	}
}
