package classes

import (
	"context"
	"testing"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
)

func TestCheckIn(t *testing.T) {
	repo := newFakeClassRepo(5)
	enroll := NewEnrollClient(repo, testNotifier())
	checkin := NewCheckInClient(repo)
	ctx := context.Background()

	if _, err := enroll.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if err := checkin.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	e, _ := repo.Enrollment(ctx, 1, 10)
	if e.Status != string(domain.Attended) {
		t.Fatalf("expected attended, got %s", e.Status)
	}
	if e.CheckedInAt == nil {
		t.Fatal("expected check-in timestamp to be set")
	}
}

func TestCheckInWaitlistedRejected(t *testing.T) {
	repo := newFakeClassRepo(1)
	enroll := NewEnrollClient(repo, testNotifier())
	checkin := NewCheckInClient(repo)
	ctx := context.Background()

	if _, err := enroll.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if _, err := enroll.Execute(ctx, 1, 1, 11); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	err := checkin.Execute(ctx, 1, 1, 11)
	if !httperr.IsCode(err, "not_enrolled") {
		t.Fatalf("expected not_enrolled, got %v", err)
	}
}

func TestCheckInWithoutEnrollment(t *testing.T) {
	checkin := NewCheckInClient(newFakeClassRepo(5))

	err := checkin.Execute(context.Background(), 1, 1, 10)
	if httperr.From(err).Kind != httperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMarkNoShow(t *testing.T) {
	repo := newFakeClassRepo(5)
	enroll := NewEnrollClient(repo, testNotifier())
	noShow := NewMarkNoShow(repo)
	ctx := context.Background()

	if _, err := enroll.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if err := noShow.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("no-show failed: %v", err)
	}

	e, _ := repo.Enrollment(ctx, 1, 10)
	if e.Status != string(domain.NoShow) {
		t.Fatalf("expected no_show, got %s", e.Status)
	}
}

func TestMarkNoShowCorrectsCheckIn(t *testing.T) {
	repo := newFakeClassRepo(5)
	enroll := NewEnrollClient(repo, testNotifier())
	checkin := NewCheckInClient(repo)
	noShow := NewMarkNoShow(repo)
	ctx := context.Background()

	if _, err := enroll.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := checkin.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	if err := noShow.Execute(ctx, 1, 1, 10); err != nil {
		t.Fatalf("no-show after check-in should be allowed: %v", err)
	}

	e, _ := repo.Enrollment(ctx, 1, 10)
	if e.Status != string(domain.NoShow) {
		t.Fatalf("expected no_show, got %s", e.Status)
	}
}
