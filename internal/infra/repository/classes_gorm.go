package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

type ClassesGormRepository struct {
	db *gorm.DB
}

func NewClassesGormRepository(db *gorm.DB) *ClassesGormRepository {
	return &ClassesGormRepository{db: db}
}

func (r *ClassesGormRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ClassesGormRepository{db: tx})
	})
}

// SessionForUpdate locks the session row, then reads capacity and the
// derived counters. All concurrent capacity-sensitive writes for the same
// session serialize on this lock.
func (r *ClassesGormRepository) SessionForUpdate(
	ctx context.Context,
	tenantID, sessionID uint,
) (*domain.SessionSnapshot, error) {

	var sess models.ClassSession
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sess, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("session_not_found", "Session not found")
	}
	if err != nil {
		return nil, err
	}

	var cls models.ClassDefinition
	err = r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", sess.ClassID, tenantID).
		First(&cls).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("session_not_found", "Session not found")
	}
	if err != nil {
		return nil, err
	}

	snap := &domain.SessionSnapshot{Session: sess, MaxParticipants: cls.MaxParticipants}

	if err := r.db.WithContext(ctx).
		Model(&models.ClassEnrollment{}).
		Where("class_session_id = ? AND status = ?", sessionID, "enrolled").
		Count(&snap.EnrolledCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ClassEnrollment{}).
		Where("class_session_id = ? AND status = ?", sessionID, "waitlist").
		Count(&snap.WaitlistCount).Error; err != nil {
		return nil, err
	}

	return snap, nil
}

func (r *ClassesGormRepository) Enrollment(
	ctx context.Context,
	sessionID, clientID uint,
) (*models.ClassEnrollment, error) {

	var e models.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("class_session_id = ? AND client_id = ?", sessionID, clientID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ClassesGormRepository) CreateEnrollment(ctx context.Context, e *models.ClassEnrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ClassesGormRepository) SaveEnrollment(ctx context.Context, e *models.ClassEnrollment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ClassesGormRepository) WaitlistHead(
	ctx context.Context,
	sessionID uint,
) (*models.ClassEnrollment, error) {

	var e models.ClassEnrollment
	err := r.db.WithContext(ctx).
		Where("class_session_id = ? AND status = ?", sessionID, "waitlist").
		Order("waitlist_position ASC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Compile-time check
var _ domain.Repository = (*ClassesGormRepository)(nil)
