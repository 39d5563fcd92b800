package booking

import (
	"context"
	"time"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
)

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

// Execute computes the free slots of a trainer on a date: candidates from
// the weekly patterns minus everything overlapping a booked appointment.
// Pure read; booking a returned slot is a separate, conflict-checked write.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	tenantID uint,
	trainerID uint,
	date time.Time,
) ([]domain.Slot, error) {

	patterns, err := uc.repo.PatternsForDay(ctx, tenantID, trainerID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}

	candidates := domain.CandidateSlots(patterns)
	if len(candidates) == 0 {
		return []domain.Slot{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := uc.repo.AppointmentsForRange(ctx, tenantID, trainerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	free := domain.FilterBooked(candidates, dayStart, booked)
	if free == nil {
		free = []domain.Slot{}
	}
	return free, nil
}
