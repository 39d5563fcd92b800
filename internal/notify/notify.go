package notify

import (
	"context"

	"go.uber.org/zap"
)

// Event is the payload handed to the notification collaborator. Delivery
// (push, email, in-app) is entirely the gateway's concern.
type Event struct {
	Type     string         `json:"type"`
	TenantID uint           `json:"tenant_id"`
	UserID   uint           `json:"user_id"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Gateway interface {
	Notify(ctx context.Context, ev Event) error
}

// Dispatcher decouples notification delivery from the request path: events
// are queued and handed to the gateway by a worker goroutine. A gateway
// failure is logged and never reaches the originating request.
type Dispatcher struct {
	gateway Gateway
	queue   chan Event
	log     *zap.Logger
}

func NewDispatcher(gateway Gateway, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		gateway: gateway,
		queue:   make(chan Event, 100),
		log:     log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.gateway.Notify(context.Background(), ev); err != nil {
			d.log.Error("notification delivery failed",
				zap.String("type", ev.Type),
				zap.Uint("tenant_id", ev.TenantID),
				zap.Uint("user_id", ev.UserID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks; when the queue is full the event is dropped
// rather than slowing the API down.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("type", ev.Type),
			zap.Uint("tenant_id", ev.TenantID),
		)
	}
}

// LogGateway is the default gateway; it records the event and succeeds.
// Real delivery backends replace it at wiring time.
type LogGateway struct {
	log *zap.Logger
}

func NewLogGateway(log *zap.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Notify(_ context.Context, ev Event) error {
	g.log.Info("notification",
		zap.String("type", ev.Type),
		zap.Uint("tenant_id", ev.TenantID),
		zap.Uint("user_id", ev.UserID),
		zap.String("title", ev.Title),
		zap.String("message", ev.Message),
	)
	return nil
}
