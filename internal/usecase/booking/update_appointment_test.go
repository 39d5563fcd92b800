package booking

import (
	"context"
	"testing"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

func seededRepo() *fakeRepo {
	repo := &fakeRepo{}
	repo.appointments = []*models.Appointment{
		{
			ID: 1, TenantID: 1, ClientID: 10, TrainerID: 20,
			StartDatetime: at(9, 0), EndDatetime: at(10, 0),
			Status: string(domain.StatusScheduled),
		},
		{
			ID: 2, TenantID: 1, ClientID: 11, TrainerID: 20,
			StartDatetime: at(11, 0), EndDatetime: at(12, 0),
			Status: string(domain.StatusScheduled),
		},
	}
	repo.nextID = 2
	return repo
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointment(repo, testSyncer())

	start, end := at(14, 0), at(15, 0)
	ap, err := uc.Execute(context.Background(), 1, 1, UpdateAppointmentInput{
		StartDatetime: &start,
		EndDatetime:   &end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ap.StartDatetime.Equal(start) || !ap.EndDatetime.Equal(end) {
		t.Fatalf("interval not updated: %v - %v", ap.StartDatetime, ap.EndDatetime)
	}
}

func TestUpdateAppointmentRescheduleIntoConflict(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointment(repo, testSyncer())

	start, end := at(11, 30), at(12, 30)
	_, err := uc.Execute(context.Background(), 1, 1, UpdateAppointmentInput{
		StartDatetime: &start,
		EndDatetime:   &end,
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if httperr.From(err).Kind != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateAppointmentExcludesItself(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointment(repo, testSyncer())

	// Shrinking inside its own interval must not count itself as a conflict.
	start, end := at(9, 0), at(9, 30)
	if _, err := uc.Execute(context.Background(), 1, 1, UpdateAppointmentInput{
		StartDatetime: &start,
		EndDatetime:   &end,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateAppointmentPartialFields(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointment(repo, testSyncer())

	notes := "bring resistance bands"
	ap, err := uc.Execute(context.Background(), 1, 1, UpdateAppointmentInput{Notes: &notes})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Notes != notes {
		t.Fatalf("notes not updated: %q", ap.Notes)
	}
	if !ap.StartDatetime.Equal(at(9, 0)) {
		t.Fatal("untouched fields must keep their value")
	}
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	uc := NewUpdateAppointment(seededRepo(), testSyncer())

	notes := "x"
	_, err := uc.Execute(context.Background(), 1, 99, UpdateAppointmentInput{Notes: &notes})
	if httperr.From(err).Kind != httperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
