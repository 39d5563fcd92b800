package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Snapshot is the appointment projection mirrored into external calendars.
// The core never talks to Google/Outlook itself; the adapter does.
type Snapshot struct {
	ID                      uint      `json:"id"`
	TrainerID               uint      `json:"trainer_id"`
	StartDatetime           time.Time `json:"start_datetime"`
	EndDatetime             time.Time `json:"end_datetime"`
	Notes                   string    `json:"notes"`
	ExternalCalendarEventID string    `json:"external_calendar_event_id"`
}

// Adapter mirrors a snapshot and may return the external event id the
// calendar assigned, which the core persists.
type Adapter interface {
	Sync(ctx context.Context, snap Snapshot) (externalEventID string, err error)
}

// PersistFunc stores a returned external event id on the appointment.
type PersistFunc func(ctx context.Context, appointmentID uint, externalEventID string) error

// Syncer pushes snapshots to the adapter off the request path. Adapter
// failures are logged and never fail the originating request.
type Syncer struct {
	adapter Adapter
	persist PersistFunc
	queue   chan Snapshot
	log     *zap.Logger
}

func NewSyncer(adapter Adapter, persist PersistFunc, log *zap.Logger) *Syncer {
	s := &Syncer{
		adapter: adapter,
		persist: persist,
		queue:   make(chan Snapshot, 100),
		log:     log,
	}

	go s.worker()
	return s
}

func (s *Syncer) worker() {
	for snap := range s.queue {
		eventID, err := s.adapter.Sync(context.Background(), snap)
		if err != nil {
			s.log.Error("calendar sync failed",
				zap.Uint("appointment_id", snap.ID),
				zap.Error(err),
			)
			continue
		}

		if eventID == "" || eventID == snap.ExternalCalendarEventID {
			continue
		}
		if err := s.persist(context.Background(), snap.ID, eventID); err != nil {
			s.log.Error("failed to persist external calendar event id",
				zap.Uint("appointment_id", snap.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *Syncer) Enqueue(snap Snapshot) {
	select {
	case s.queue <- snap:
	default:
		s.log.Warn("calendar sync queue full, dropping snapshot",
			zap.Uint("appointment_id", snap.ID))
	}
}

// NopAdapter is the default adapter: it logs the snapshot and keeps any
// existing external event id.
type NopAdapter struct {
	log *zap.Logger
}

func NewNopAdapter(log *zap.Logger) *NopAdapter {
	return &NopAdapter{log: log}
}

func (a *NopAdapter) Sync(_ context.Context, snap Snapshot) (string, error) {
	a.log.Debug("calendar snapshot",
		zap.Uint("appointment_id", snap.ID),
		zap.Uint("trainer_id", snap.TrainerID),
		zap.Time("start", snap.StartDatetime),
	)
	return snap.ExternalCalendarEventID, nil
}
