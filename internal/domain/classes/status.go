package classes

import (
	"github.com/fitdesk/scheduling-api/internal/httperr"
)

type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionScheduled:  {SessionInProgress, SessionCancelled},
	SessionInProgress: {SessionCompleted, SessionCancelled},
}

func IsValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

func CanTransitionSession(from, to SessionStatus) error {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.State("invalid_transition",
		"cannot transition session from "+string(from)+" to "+string(to))
}

type EnrollmentStatus string

const (
	Enrolled   EnrollmentStatus = "enrolled"
	Waitlisted EnrollmentStatus = "waitlist"
	Attended   EnrollmentStatus = "attended"
	NoShow     EnrollmentStatus = "no_show"
	Cancelled  EnrollmentStatus = "cancelled"
)

// Check-in requires an enrolled seat.
func CanCheckIn(s EnrollmentStatus) error {
	if s != Enrolled {
		return httperr.State("not_enrolled", "client is not enrolled in this session")
	}
	return nil
}

// No-show is legal from enrolled or attended, covering the case where a
// check-in is corrected afterwards.
func CanMarkNoShow(s EnrollmentStatus) error {
	if s != Enrolled && s != Attended {
		return httperr.State("not_enrolled", "client has no active enrollment for this session")
	}
	return nil
}

func CanCancelEnrollment(s EnrollmentStatus) error {
	if s != Enrolled && s != Waitlisted {
		return httperr.NotFound("enrollment_not_found", "Active enrollment not found")
	}
	return nil
}

func IsActiveEnrollment(s EnrollmentStatus) bool {
	return s == Enrolled || s == Waitlisted || s == Attended || s == NoShow
}
