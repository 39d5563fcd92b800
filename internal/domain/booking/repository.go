package booking

import (
	"context"
	"time"

	"github.com/fitdesk/scheduling-api/internal/models"
)

// Repository is the storage port for availability and appointments.
type Repository interface {
	// InTx runs fn against a transaction-bound repository. Conflict checks
	// and the writes they guard must share one transaction.
	InTx(ctx context.Context, fn func(Repository) error) error

	PatternsForDay(ctx context.Context, tenantID, trainerID uint, dayOfWeek int) ([]models.AvailabilityPattern, error)

	// AppointmentsForRange returns non-cancelled appointments of the
	// trainer starting inside [from, to), ordered by start time.
	AppointmentsForRange(ctx context.Context, tenantID, trainerID uint, from, to time.Time) ([]models.Appointment, error)

	// LockConflicts counts non-cancelled appointments of the trainer
	// overlapping [start, end). The implementation serializes all
	// conflict-checked writes for the trainer until the surrounding
	// transaction commits, so the count stays true through the guarded
	// write. excludeID skips the appointment being rescheduled (0 for
	// none).
	LockConflicts(ctx context.Context, tenantID, trainerID uint, start, end time.Time, excludeID uint) (int64, error)

	Create(ctx context.Context, ap *models.Appointment) error

	// Get returns the tenant's appointment, holding the row until the
	// surrounding transaction commits.
	Get(ctx context.Context, tenantID, id uint) (*models.Appointment, error)
	Save(ctx context.Context, ap *models.Appointment) error

	SetExternalEventID(ctx context.Context, id uint, eventID string) error
}
