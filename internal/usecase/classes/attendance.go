package classes

import (
	"context"
	"time"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
)

type CheckInClient struct {
	repo domain.Repository
}

func NewCheckInClient(repo domain.Repository) *CheckInClient {
	return &CheckInClient{repo: repo}
}

func (uc *CheckInClient) Execute(ctx context.Context, tenantID, sessionID, clientID uint) error {
	return uc.repo.InTx(ctx, func(r domain.Repository) error {
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
		if err := domain.CanCheckIn(domain.EnrollmentStatus(e.Status)); err != nil {
			return err
		}

		now := time.Now()
		e.Status = string(domain.Attended)
		e.CheckedInAt = &now
		return r.SaveEnrollment(ctx, e)
	})
}

type MarkNoShow struct {
	repo domain.Repository
}

func NewMarkNoShow(repo domain.Repository) *MarkNoShow {
	return &MarkNoShow{repo: repo}
}

func (uc *MarkNoShow) Execute(ctx context.Context, tenantID, sessionID, clientID uint) error {
	return uc.repo.InTx(ctx, func(r domain.Repository) error {
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
		if err := domain.CanMarkNoShow(domain.EnrollmentStatus(e.Status)); err != nil {
			return err
		}

		e.Status = string(domain.NoShow)
		return r.SaveEnrollment(ctx, e)
	})
}
