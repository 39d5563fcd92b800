package classes

import (
	"context"
	"fmt"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
)

type EnrollResult struct {
	Status   domain.EnrollmentStatus `json:"status"`
	Position *int                    `json:"position,omitempty"`
}

type EnrollClient struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
}

func NewEnrollClient(repo domain.Repository, notifier *notify.Dispatcher) *EnrollClient {
	return &EnrollClient{repo: repo, notifier: notifier}
}

// Execute enrolls a client into a session, or appends to the waitlist when
// the session is full. The capacity check and the write run in one
// transaction holding the session row lock, so concurrent enrollments for
// the last seat yield exactly one enrolled and the rest waitlisted.
func (uc *EnrollClient) Execute(
	ctx context.Context,
	tenantID uint,
	sessionID uint,
	clientID uint,
) (*EnrollResult, error) {

	if clientID == 0 {
		return nil, httperr.Validation("missing_client", "clientId is required")
	}

	var result *EnrollResult

	err := uc.repo.InTx(ctx, func(r domain.Repository) error {
		snap, err := r.SessionForUpdate(ctx, tenantID, sessionID)
		if err != nil {
			return err
		}

		if domain.SessionStatus(snap.Session.Status) != domain.SessionScheduled {
			return httperr.State("session_not_open", "Session is not open for enrollment")
		}

		existing, err := r.Enrollment(ctx, sessionID, clientID)
		if err != nil {
			return err
		}
		if existing != nil && domain.IsActiveEnrollment(domain.EnrollmentStatus(existing.Status)) {
			return httperr.Conflict("already_enrolled", "Client already enrolled in this session")
		}

		status := domain.Enrolled
		var position *int
		if snap.EnrolledCount >= int64(snap.MaxParticipants) {
			status = domain.Waitlisted
			pos := int(snap.WaitlistCount) + 1
			position = &pos
		}

		if existing != nil {
			// Cancelled row is reused so the (session, client) pair stays unique.
			existing.Status = string(status)
			existing.WaitlistPosition = position
			existing.CheckedInAt = nil
			if err := r.SaveEnrollment(ctx, existing); err != nil {
				return err
			}
		} else {
			e := &models.ClassEnrollment{
				SessionID:        sessionID,
				ClientID:         clientID,
				Status:           string(status),
				WaitlistPosition: position,
			}
			if err := r.CreateEnrollment(ctx, e); err != nil {
				return err
			}
		}

		result = &EnrollResult{Status: status, Position: position}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := notify.Event{
		Type:     "class_enrolled",
		TenantID: tenantID,
		UserID:   clientID,
		Title:    "Class enrollment confirmed",
		Message:  "You are enrolled in the session",
		Metadata: map[string]any{"session_id": sessionID},
	}
	if result.Status == domain.Waitlisted {
		ev.Type = "class_waitlisted"
		ev.Title = "Added to waitlist"
		ev.Message = fmt.Sprintf("Session is full, you are number %d on the waitlist", *result.Position)
		ev.Metadata["position"] = *result.Position
	}
	uc.notifier.Dispatch(ev)

	return result, nil
}
