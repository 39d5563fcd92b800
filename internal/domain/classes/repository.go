package classes

import (
	"context"

	"github.com/fitdesk/scheduling-api/internal/models"
)

// SessionSnapshot is a session read together with its capacity and the
// counters derived from enrollment rows at read time.
type SessionSnapshot struct {
	Session         models.ClassSession
	MaxParticipants int
	EnrolledCount   int64
	WaitlistCount   int64
}

// Repository is the storage port for sessions and enrollments. Capacity
// checks rely on SessionForUpdate locking the session row, so concurrent
// enrollments for the same session serialize on it.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	SessionForUpdate(ctx context.Context, tenantID, sessionID uint) (*SessionSnapshot, error)

	// Enrollment returns the (session, client) row regardless of status,
	// or nil when none exists.
	Enrollment(ctx context.Context, sessionID, clientID uint) (*models.ClassEnrollment, error)

	CreateEnrollment(ctx context.Context, e *models.ClassEnrollment) error
	SaveEnrollment(ctx context.Context, e *models.ClassEnrollment) error

	// WaitlistHead returns the waitlist row with the lowest position for
	// the session, or nil when the waitlist is empty.
	WaitlistHead(ctx context.Context, sessionID uint) (*models.ClassEnrollment, error)
}
