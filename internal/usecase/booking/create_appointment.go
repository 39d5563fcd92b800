package booking

import (
	"context"
	"time"

	"github.com/fitdesk/scheduling-api/internal/calendar"
	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
)

type CreateAppointmentInput struct {
	ClientID  uint
	TrainerID uint

	StartDatetime time.Time
	EndDatetime   time.Time

	AppointmentType string
	Location        string
	Notes           string
}

type CreateAppointment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	syncer   *calendar.Syncer
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	syncer *calendar.Syncer,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		syncer:   syncer,
	}
}

// Execute books an appointment. The overlap check and the insert share one
// transaction with row locks on the trainer's appointments, so two
// concurrent requests for overlapping intervals cannot both succeed.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	tenantID uint,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 || in.TrainerID == 0 || in.StartDatetime.IsZero() || in.EndDatetime.IsZero() {
		return nil, httperr.Validation("missing_fields",
			"clientId, trainerId, startDatetime and endDatetime are required")
	}
	if !in.EndDatetime.After(in.StartDatetime) {
		return nil, httperr.Validation("invalid_interval", "endDatetime must be after startDatetime")
	}

	apType := in.AppointmentType
	if apType == "" {
		apType = "training"
	}

	var created *models.Appointment

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		conflicts, err := r.LockConflicts(ctx, tenantID, in.TrainerID, in.StartDatetime, in.EndDatetime, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.Conflict("time_conflict",
				"The requested interval overlaps an existing appointment")
		}

		ap := &models.Appointment{
			TenantID:        tenantID,
			ClientID:        in.ClientID,
			TrainerID:       in.TrainerID,
			StartDatetime:   in.StartDatetime,
			EndDatetime:     in.EndDatetime,
			AppointmentType: apType,
			Location:        in.Location,
			Status:          string(domain.InitialStatus()),
			Notes:           in.Notes,
		}

		if err := r.Create(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		Type:     "appointment_created",
		TenantID: tenantID,
		UserID:   created.ClientID,
		Title:    "Appointment scheduled",
		Message:  "Your appointment has been scheduled",
		Metadata: map[string]any{
			"appointment_id": created.ID,
			"start":          created.StartDatetime,
		},
	})

	uc.syncer.Enqueue(snapshotOf(created))

	return created, nil
}

func snapshotOf(ap *models.Appointment) calendar.Snapshot {
	return calendar.Snapshot{
		ID:                      ap.ID,
		TrainerID:               ap.TrainerID,
		StartDatetime:           ap.StartDatetime,
		EndDatetime:             ap.EndDatetime,
		Notes:                   ap.Notes,
		ExternalCalendarEventID: ap.ExternalCalendarEventID,
	}
}
