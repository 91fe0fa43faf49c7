package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sink delivers events to one destination.
type Sink interface {
	Name() string
	Publish(ctx context.Context, ev Event) error
}

// Publisher is what use cases depend on.
type Publisher interface {
	Publish(ev Event)
}

type DropObserver interface {
	ObserveDropped(queue string)
}

// Dispatcher fans events out to sinks from a background worker. Publish
// never blocks a request: a full queue drops the event.
type Dispatcher struct {
	sinks   []Sink
	queue   chan Event
	logger  *slog.Logger
	dropped DropObserver
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *slog.Logger, dropped DropObserver, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sinks:   sinks,
		queue:   make(chan Event, 100),
		logger:  logger,
		dropped: dropped,
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := s.Publish(ctx, ev); err != nil {
				d.logger.Error("event delivery failed",
					"sink", s.Name(),
					"event_id", ev.ID,
					"event_type", ev.Type,
					"appointment_id", ev.AppointmentID,
					"err", err,
				)
			}
			cancel()
		}
	}
}

// Publish queues ev. Events published after Close are dropped.
func (d *Dispatcher) Publish(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("dispatcher closed, dropping event", "event_type", ev.Type, "appointment_id", ev.AppointmentID)
		if d.dropped != nil {
			d.dropped.ObserveDropped("events")
		}
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("event queue full, dropping event", "event_type", ev.Type, "appointment_id", ev.AppointmentID)
		if d.dropped != nil {
			d.dropped.ObserveDropped("events")
		}
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// LogSink writes every event to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (LogSink) Name() string { return "log" }

func (s LogSink) Publish(_ context.Context, ev Event) error {
	s.Logger.Info("appointment event",
		"event_id", ev.ID,
		"event_type", ev.Type,
		"appointment_id", ev.AppointmentID,
		"status", ev.Status,
	)
	return nil
}
