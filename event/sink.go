package event

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Sink receives the events of a committed call, in emission order.
type Sink interface {
	Publish(ctx context.Context, events []Event) error
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(context.Context, []Event) error { return nil }

// LogSink writes one log line per event.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink logging through log. A nil log discards.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, events []Event) error {
	for _, e := range events {
		s.log.Info("event",
			zap.String("kind", string(e.Kind)),
			zap.Uint64("token_id", e.TokenID),
			zap.Stringer("id", e.ID),
		)
	}
	return nil
}

// Recorder keeps the most recent events in memory. Positions count every
// event ever published, so they stay stable as old events are dropped.
type Recorder struct {
	mu     sync.RWMutex
	limit  int
	base   int // position of events[0]
	events []Event
}

// NewRecorder keeps at most limit events. limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) Publish(_ context.Context, events []Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, events...)
	if r.limit > 0 && len(r.events) > r.limit {
		// An append past capacity copies only the retained window.
		drop := len(r.events) - r.limit
		r.base += drop
		r.events = r.events[drop:]
	}
	return nil
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Event(nil), r.events...)
}

// Since returns the retained events at position pos and later, along with
// the position to poll from next. A pos older than the oldest retained
// event starts from the oldest one; a pos past the end returns nothing.
func (r *Recorder) Since(pos int) ([]Event, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	end := r.base + len(r.events)
	if pos < r.base {
		pos = r.base
	}
	if pos >= end {
		return nil, end
	}
	return append([]Event(nil), r.events[pos-r.base:]...), end
}

// Reset forgets every recorded event. Positions keep counting.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.base += len(r.events)
	r.events = nil
	r.mu.Unlock()
}

// Multi fans events out to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) Publish(ctx context.Context, events []Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
