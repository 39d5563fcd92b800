package booking

import (
	"context"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
)

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	notifier *notify.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{repo: repo, notifier: notifier}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to := domain.Status(status)
	if !domain.IsValidStatus(to) {
		return nil, httperr.Validation("invalid_status", "unknown appointment status: "+status)
	}

	// The transition check and the write share one transaction; Get holds
	// the row, so two concurrent transitions from the same state cannot
	// both pass the check.
	var ap *models.Appointment
	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		cur, err := r.Get(ctx, tenantID, appointmentID)
		if err != nil {
			return err
		}

		if err := domain.CanTransition(domain.Status(cur.Status), to); err != nil {
			return err
		}

		cur.Status = string(to)
		if err := r.Save(ctx, cur); err != nil {
			return err
		}

		ap = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	evType := "appointment_status_changed"
	title := "Appointment updated"
	if to == domain.StatusCancelled {
		evType = "appointment_cancelled"
		title = "Appointment cancelled"
	}

	uc.notifier.Dispatch(notify.Event{
		Type:     evType,
		TenantID: tenantID,
		UserID:   ap.ClientID,
		Title:    title,
		Message:  "Appointment status is now " + string(to),
		Metadata: map[string]any{"appointment_id": ap.ID, "status": string(to)},
	})

	return ap, nil
}
