package classes

import (
	"context"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
)

type CancelEnrollment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewCancelEnrollment(repo domain.Repository, notifier *notify.Dispatcher) *CancelEnrollment {
	return &CancelEnrollment{repo: repo, notifier: notifier}
}

// Execute cancels an active enrollment. When the cancellation vacates a
// seat (the enrollment was enrolled, not waitlisted), the waitlist head is
// promoted inside the same transaction, so two concurrent cancellations
// cannot promote the same client twice. Waitlist cancellations leave the
// remaining positions untouched; ordering is by value, gaps are fine.
func (uc *CancelEnrollment) Execute(
	ctx context.Context,
	tenantID uint,
	sessionID uint,
	clientID uint,
) error {

	var promoted *models.ClassEnrollment

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		if _, err := r.SessionForUpdate(ctx, tenantID, sessionID); err != nil {
			return err
		}

		e, err := r.Enrollment(ctx, sessionID, clientID)
		if err != nil {
			return err
		}
		if e == nil {
			return httperr.NotFound("enrollment_not_found", "Active enrollment not found")
		}
		if err := domain.CanCancelEnrollment(domain.EnrollmentStatus(e.Status)); err != nil {
			return err
		}

		hadSeat := domain.EnrollmentStatus(e.Status) == domain.Enrolled

		e.Status = string(domain.Cancelled)
		e.WaitlistPosition = nil
		if err := r.SaveEnrollment(ctx, e); err != nil {
			return err
		}

		if hadSeat {
			head, err := r.WaitlistHead(ctx, sessionID)
			if err != nil {
				return err
			}
			if head != nil {
				head.Status = string(domain.Enrolled)
				head.WaitlistPosition = nil
				if err := r.SaveEnrollment(ctx, head); err != nil {
					return err
				}
				promoted = head
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	uc.notifier.Dispatch(notify.Event{
		Type:     "class_enrollment_cancelled",
		TenantID: tenantID,
		UserID:   clientID,
		Title:    "Enrollment cancelled",
		Message:  "Your enrollment has been cancelled",
		Metadata: map[string]any{"session_id": sessionID},
	})

	if promoted != nil {
		uc.notifier.Dispatch(notify.Event{
			Type:     "class_promoted",
			TenantID: tenantID,
			UserID:   promoted.ClientID,
			Title:    "A spot opened up",
			Message:  "You have been moved from the waitlist into the session",
			Metadata: map[string]any{"session_id": sessionID},
		})
	}

	return nil
}
