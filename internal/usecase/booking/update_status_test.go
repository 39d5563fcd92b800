package booking

import (
	"context"
	"testing"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/models"
)

func TestUpdateStatusHappyPath(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointmentStatus(repo, testNotifier())

	ap, err := uc.Execute(context.Background(), 1, 1, "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected confirmed, got %s", ap.Status)
	}

	ap, err = uc.Execute(context.Background(), 1, 1, "completed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected completed, got %s", ap.Status)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointmentStatus(repo, testNotifier())

	// scheduled -> completed skips confirmation.
	_, err := uc.Execute(context.Background(), 1, 1, "completed")
	if err == nil {
		t.Fatal("expected transition to be rejected")
	}
	if httperr.From(err).Kind != httperr.KindState {
		t.Fatalf("expected state error, got %v", err)
	}
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	repo := seededRepo()
	uc := NewUpdateAppointmentStatus(repo, testNotifier())

	if _, err := uc.Execute(context.Background(), 1, 1, "cancelled"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), 1, 1, "confirmed")
	if httperr.From(err).Kind != httperr.KindState {
		t.Fatalf("cancelled appointment must reject further transitions, got %v", err)
	}
}

// txTrackingRepo records whether reads and writes happen inside InTx.
type txTrackingRepo struct {
	*fakeRepo
	inTx     bool
	getInTx  bool
	saveInTx bool
}

func (r *txTrackingRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	r.inTx = true
	defer func() { r.inTx = false }()
	return fn(r)
}

func (r *txTrackingRepo) Get(ctx context.Context, tenantID, id uint) (*models.Appointment, error) {
	r.getInTx = r.inTx
	return r.fakeRepo.Get(ctx, tenantID, id)
}

func (r *txTrackingRepo) Save(ctx context.Context, ap *models.Appointment) error {
	r.saveInTx = r.inTx
	return r.fakeRepo.Save(ctx, ap)
}

func TestUpdateStatusReadsAndWritesInOneTransaction(t *testing.T) {
	repo := &txTrackingRepo{fakeRepo: seededRepo()}
	uc := NewUpdateAppointmentStatus(repo, testNotifier())

	if _, err := uc.Execute(context.Background(), 1, 1, "confirmed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.getInTx || !repo.saveInTx {
		t.Fatal("transition check and save must share one transaction")
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	uc := NewUpdateAppointmentStatus(seededRepo(), testNotifier())

	_, err := uc.Execute(context.Background(), 1, 1, "done")
	if !httperr.IsCode(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}
