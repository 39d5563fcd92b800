package booking

import (
	"context"
	"time"

	"github.com/fitdesk/scheduling-api/internal/calendar"
	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

// UpdateAppointmentInput carries partial updates; nil fields keep their
// previous value.
type UpdateAppointmentInput struct {
	ClientID  *uint
	TrainerID *uint

	StartDatetime *time.Time
	EndDatetime   *time.Time

	AppointmentType *string
	Location        *string
	Notes           *string
}

type UpdateAppointment struct {
	repo   domain.Repository
	syncer *calendar.Syncer
}

func NewUpdateAppointment(repo domain.Repository, syncer *calendar.Syncer) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, syncer: syncer}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var updated *models.Appointment

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		ap, err := r.Get(ctx, tenantID, appointmentID)
		if err != nil {
			return err
		}

		reschedule := false

		if in.ClientID != nil {
			ap.ClientID = *in.ClientID
		}
		if in.TrainerID != nil && *in.TrainerID != ap.TrainerID {
			ap.TrainerID = *in.TrainerID
			reschedule = true
		}
		if in.StartDatetime != nil {
			ap.StartDatetime = *in.StartDatetime
			reschedule = true
		}
		if in.EndDatetime != nil {
			ap.EndDatetime = *in.EndDatetime
			reschedule = true
		}
		if in.AppointmentType != nil {
			ap.AppointmentType = *in.AppointmentType
		}
		if in.Location != nil {
			ap.Location = *in.Location
		}
		if in.Notes != nil {
			ap.Notes = *in.Notes
		}

		if !ap.EndDatetime.After(ap.StartDatetime) {
			return httperr.Validation("invalid_interval", "endDatetime must be after startDatetime")
		}

		// Moving the interval or the trainer re-runs the overlap check in
		// the same transaction, excluding the appointment itself.
		if reschedule && domain.Status(ap.Status) != domain.StatusCancelled {
			conflicts, err := r.LockConflicts(ctx, tenantID, ap.TrainerID,
				ap.StartDatetime, ap.EndDatetime, ap.ID)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return httperr.Conflict("time_conflict",
					"The requested interval overlaps an existing appointment")
			}
		}

		if err := r.Save(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.syncer.Enqueue(snapshotOf(updated))

	return updated, nil
}
