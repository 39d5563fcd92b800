package booking

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fitdesk/scheduling-api/internal/calendar"
	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
)

// fakeRepo keeps appointments in memory. Conflict counting mirrors the SQL
// overlap predicate closely enough for the use cases under test.
type fakeRepo struct {
	patterns     []models.AvailabilityPattern
	appointments []*models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) PatternsForDay(_ context.Context, _, _ uint, dayOfWeek int) ([]models.AvailabilityPattern, error) {
	var out []models.AvailabilityPattern
	for _, p := range f.patterns {
		if p.DayOfWeek == dayOfWeek && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppointmentsForRange(_ context.Context, _, trainerID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TrainerID != trainerID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if !ap.StartDatetime.Before(from) && ap.StartDatetime.Before(to) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) LockConflicts(_ context.Context, _, trainerID uint, start, end time.Time, excludeID uint) (int64, error) {
	var n int64
	for _, ap := range f.appointments {
		if ap.TrainerID != trainerID || ap.ID == excludeID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartDatetime, ap.EndDatetime) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Create(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) Get(_ context.Context, _, id uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.NotFound("appointment_not_found", "Appointment not found")
}

func (f *fakeRepo) Save(_ context.Context, ap *models.Appointment) error {
	for i, existing := range f.appointments {
		if existing.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return httperr.NotFound("appointment_not_found", "Appointment not found")
}

func (f *fakeRepo) SetExternalEventID(_ context.Context, id uint, eventID string) error {
	for _, ap := range f.appointments {
		if ap.ID == id {
			ap.ExternalCalendarEventID = eventID
			return nil
		}
	}
	return nil
}

func testNotifier() *notify.Dispatcher {
	nop := zap.NewNop()
	return notify.NewDispatcher(notify.NewLogGateway(nop), nop)
}

func testSyncer() *calendar.Syncer {
	nop := zap.NewNop()
	return calendar.NewSyncer(
		calendar.NewNopAdapter(nop),
		func(context.Context, uint, string) error { return nil },
		nop,
	)
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestCreateAppointment(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewCreateAppointment(repo, testNotifier(), testSyncer())

	ap, err := uc.Execute(context.Background(), 1, CreateAppointmentInput{
		ClientID:      10,
		TrainerID:     20,
		StartDatetime: at(9, 0),
		EndDatetime:   at(10, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.ID == 0 {
		t.Fatal("expected appointment to be assigned an id")
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("expected scheduled status, got %s", ap.Status)
	}
	if ap.AppointmentType != "training" {
		t.Fatalf("expected default appointment type, got %s", ap.AppointmentType)
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewCreateAppointment(repo, testNotifier(), testSyncer())

	ctx := context.Background()
	if _, err := uc.Execute(ctx, 1, CreateAppointmentInput{
		ClientID: 10, TrainerID: 20,
		StartDatetime: at(9, 0), EndDatetime: at(10, 0),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := uc.Execute(ctx, 1, CreateAppointmentInput{
		ClientID: 11, TrainerID: 20,
		StartDatetime: at(9, 30), EndDatetime: at(10, 30),
	})
	if err == nil {
		t.Fatal("expected overlap to be rejected")
	}
	if httperr.From(err).Kind != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("conflicting booking must not be stored, have %d", len(repo.appointments))
	}
}

func TestCreateAppointmentAllowsBackToBack(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewCreateAppointment(repo, testNotifier(), testSyncer())

	ctx := context.Background()
	if _, err := uc.Execute(ctx, 1, CreateAppointmentInput{
		ClientID: 10, TrainerID: 20,
		StartDatetime: at(9, 0), EndDatetime: at(10, 0),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	if _, err := uc.Execute(ctx, 1, CreateAppointmentInput{
		ClientID: 11, TrainerID: 20,
		StartDatetime: at(10, 0), EndDatetime: at(11, 0),
	}); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}
}

func TestCreateAppointmentIgnoresCancelled(t *testing.T) {
	repo := &fakeRepo{}
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 1, TrainerID: 20,
		StartDatetime: at(9, 0), EndDatetime: at(10, 0),
		Status: string(domain.StatusCancelled),
	})
	repo.nextID = 1

	uc := NewCreateAppointment(repo, testNotifier(), testSyncer())

	if _, err := uc.Execute(context.Background(), 1, CreateAppointmentInput{
		ClientID: 10, TrainerID: 20,
		StartDatetime: at(9, 0), EndDatetime: at(10, 0),
	}); err != nil {
		t.Fatalf("cancelled appointment must not block the slot: %v", err)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	uc := NewCreateAppointment(&fakeRepo{}, testNotifier(), testSyncer())
	ctx := context.Background()

	_, err := uc.Execute(ctx, 1, CreateAppointmentInput{
		TrainerID:     20,
		StartDatetime: at(9, 0), EndDatetime: at(10, 0),
	})
	if !httperr.IsCode(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}

	_, err = uc.Execute(ctx, 1, CreateAppointmentInput{
		ClientID: 10, TrainerID: 20,
		StartDatetime: at(10, 0), EndDatetime: at(9, 0),
	})
	if !httperr.IsCode(err, "invalid_interval") {
		t.Fatalf("expected invalid_interval, got %v", err)
	}
}
