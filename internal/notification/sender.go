package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Sender delivers an alert. The push/local notification mechanism of a
// device is out of scope; implementations here log alerts and keep them
// available for the alerts API.
type Sender interface {
	Send(ctx context.Context, alert Alert) error
}

// LogSender writes every alert to the structured log.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a log-backed sender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("sender", "log").Logger()}
}

func (s *LogSender) Send(_ context.Context, alert Alert) error {
	s.logger.Info().
		Str("type", string(alert.Type)).
		Str("title", alert.Title).
		Str("body", alert.Body).
		Msg("alert")
	return nil
}

// MemorySink keeps the most recent alerts in memory, newest first. It
// backs the alerts API so clients can list what would have been pushed
// to a device.
type MemorySink struct {
	mu     sync.Mutex
	alerts []Alert
	limit  int
}

// NewMemorySink creates a sink retaining at most limit alerts.
func NewMemorySink(limit int) *MemorySink {
	if limit < 1 {
		limit = 100
	}
	return &MemorySink{limit: limit}
}

func (s *MemorySink) Send(_ context.Context, alert Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append([]Alert{alert}, s.alerts...)
	if len(s.alerts) > s.limit {
		s.alerts = s.alerts[:s.limit]
	}
	return nil
}

// Recent returns a snapshot of the retained alerts, newest first.
func (s *MemorySink) Recent() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Fanout delivers each alert to every sender, returning the first
// error after attempting all of them.
type Fanout []Sender

func (f Fanout) Send(ctx context.Context, alert Alert) error {
	var firstErr error
	for _, s := range f {
		if err := s.Send(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
