package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

func (r *BookingGormRepository) PatternsForDay(
	ctx context.Context,
	tenantID, trainerID uint,
	dayOfWeek int,
) ([]models.AvailabilityPattern, error) {

	var patterns []models.AvailabilityPattern
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND trainer_id = ? AND day_of_week = ? AND active = ?",
			tenantID, trainerID, dayOfWeek, true,
		).
		Order("start_time ASC").
		Find(&patterns).Error; err != nil {
		return nil, err
	}

	return patterns, nil
}

func (r *BookingGormRepository) AppointmentsForRange(
	ctx context.Context,
	tenantID, trainerID uint,
	from, to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND trainer_id = ? AND status <> 'cancelled' AND start_datetime >= ? AND start_datetime < ?",
			tenantID, trainerID, from, to,
		).
		Order("start_datetime ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// LockConflicts serializes conflict-checked writes for one trainer, then
// counts the overlapping appointments. The transaction-scoped advisory
// lock keyed on (tenant, trainer) carries the mutual exclusion: FOR UPDATE
// on the conflict rows alone cannot exclude two inserts against a free
// calendar, since both would lock zero rows. Call inside InTx.
func (r *BookingGormRepository) LockConflicts(
	ctx context.Context,
	tenantID, trainerID uint,
	start, end time.Time,
	excludeID uint,
) (int64, error) {

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(tenantID), int32(trainerID)).
		Error; err != nil {
		return 0, err
	}

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"tenant_id = ? AND trainer_id = ? AND status <> 'cancelled' AND start_datetime < ? AND end_datetime > ?",
			tenantID, trainerID, end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		return 0, err
	}

	return int64(len(conflicts)), nil
}

func (r *BookingGormRepository) Create(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// Get locks the row, so a read-modify-write inside InTx cannot interleave
// with another writer of the same appointment.
func (r *BookingGormRepository) Get(ctx context.Context, tenantID, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("appointment_not_found", "Appointment not found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) Save(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) SetExternalEventID(ctx context.Context, id uint, eventID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("external_calendar_event_id", eventID).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
