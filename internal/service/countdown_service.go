package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/repository"
	"github.com/google/uuid"
)

var ErrNotEditing = errors.New("countdown is not being edited")

// CountdownService wires the clock and the edit buffer together
type CountdownService interface {
	// State returns the clock state (stopped, running)
	State() domain.ClockState

	// Display returns a render snapshot
	Display() domain.Display

	// Armed reports whether the host should keep delivering ticks
	Armed() bool

	// TickInterval is the period between ticks while armed
	TickInterval() time.Duration

	// SessionID identifies the current countdown in the journal
	SessionID() string

	// Start runs the clock, committing any edit in progress first
	Start(ctx context.Context)

	// Stop halts the clock; no tick has an effect after it returns
	Stop(ctx context.Context)

	// Toggle flips between running and stopped and returns the new running flag
	Toggle(ctx context.Context) bool

	// Reset stops the clock, leaves editing and restores the default duration
	Reset(ctx context.Context)

	// Tick advances the clock by one period. No-op when disarmed or editing.
	Tick(ctx context.Context) bool

	// BeginEdit stops the clock and loads the remaining time into the buffer
	BeginEdit(ctx context.Context)

	// SetDigits replaces the buffer with raw digit input
	SetDigits(ctx context.Context, raw string) error

	// TypeDigit appends one digit to the buffer
	TypeDigit(ctx context.Context, d rune) error

	// Backspace removes the last typed digit
	Backspace(ctx context.Context) error

	// CommitEdit parses the buffer into the clock. It reports whether an edit was committed.
	CommitEdit(ctx context.Context) bool
}

type countdownService struct {
	mu sync.Mutex

	clock  *domain.Clock
	buffer *domain.EditBuffer
	events repository.EventRepository
	logger *slog.Logger

	session string
	span    int64 // seconds the current countdown started from
	expired bool
}

// NewCountdownService creates a countdown service around the given state holders
func NewCountdownService(
	clock *domain.Clock,
	buffer *domain.EditBuffer,
	events repository.EventRepository,
	logger *slog.Logger,
) CountdownService {
	if events == nil {
		events = repository.NopEventRepo{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &countdownService{
		clock:   clock,
		buffer:  buffer,
		events:  events,
		logger:  logger,
		session: uuid.NewString(),
		span:    clock.Remaining(),
	}
}

func (s *countdownService) State() domain.ClockState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.State()
}

func (s *countdownService) Display() domain.Display {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := domain.Display{
		Source:    domain.FromClock,
		Remaining: s.clock.Remaining(),
		Buffer:    s.buffer.Buffer(),
		Running:   s.clock.Running(),
		Progress:  domain.Progress(s.clock.Remaining(), s.span),
	}
	if s.buffer.Editing() {
		d.Source = domain.FromBuffer
	}
	return d
}

func (s *countdownService) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Running() && !s.buffer.Editing()
}

func (s *countdownService) TickInterval() time.Duration {
	return s.clock.TickInterval()
}

func (s *countdownService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *countdownService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked(ctx)
}

func (s *countdownService) startLocked(ctx context.Context) {
	s.commitLocked(ctx)
	if s.clock.Running() {
		return
	}
	s.clock.Start()
	s.record(ctx, domain.EventStarted, nil)
}

func (s *countdownService) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(ctx)
}

func (s *countdownService) stopLocked(ctx context.Context) {
	if !s.clock.Running() {
		return
	}
	s.clock.Stop()
	s.record(ctx, domain.EventStopped, nil)
}

func (s *countdownService) Toggle(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clock.Running() {
		s.stopLocked(ctx)
		return false
	}
	s.startLocked(ctx)
	return true
}

func (s *countdownService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Stop()
	s.buffer.Cancel()
	s.buffer.Reset()
	s.clock.Reset()

	s.span = s.clock.Remaining()
	s.expired = false
	s.record(ctx, domain.EventReset, nil)
	s.session = uuid.NewString()
}

func (s *countdownService) Tick(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer.Editing() || !s.clock.Running() {
		return false
	}
	// a clamped tick at zero changes nothing but still ends the countdown
	changed := s.clock.Tick()

	if !s.expired && s.clock.Remaining() <= 0 {
		s.expired = true
		s.record(ctx, domain.EventExpired, nil)
		if !s.clock.Running() {
			s.logger.Info("countdown stopped at zero", slog.String("session", s.session))
		}
	}
	return changed
}

func (s *countdownService) BeginEdit(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer.Editing() {
		return
	}
	s.stopLocked(ctx)
	s.buffer.Begin(s.clock.Remaining())
	s.record(ctx, domain.EventEditBegun, nil)
}

func (s *countdownService) SetDigits(ctx context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.buffer.Editing() {
		return ErrNotEditing
	}
	if !domain.IsDigits(raw) {
		return fmt.Errorf("invalid edit input %q: %w", raw, domain.ErrInvalidDigits)
	}
	s.buffer.OnDigitsChanged(raw)
	return nil
}

func (s *countdownService) TypeDigit(ctx context.Context, d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("invalid edit input %q: %w", d, domain.ErrInvalidDigits)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.buffer.Editing() {
		return ErrNotEditing
	}
	s.buffer.AppendDigit(d)
	return nil
}

func (s *countdownService) Backspace(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.buffer.Editing() {
		return ErrNotEditing
	}
	s.buffer.Backspace()
	return nil
}

func (s *countdownService) CommitEdit(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx)
}

func (s *countdownService) commitLocked(ctx context.Context) bool {
	packed, ok := s.buffer.Commit()
	if !ok {
		return false
	}

	s.clock.Stop()
	s.clock.SetRemaining(domain.PackedToSeconds(packed))

	s.span = s.clock.Remaining()
	s.expired = false
	s.session = uuid.NewString()
	s.record(ctx, domain.EventEditCommitted, &packed)
	return true
}

// record writes a journal event. Failures are logged and otherwise ignored
// so that a broken journal never blocks the countdown.
func (s *countdownService) record(ctx context.Context, kind domain.EventKind, packed *domain.PackedTime) {
	event := domain.NewEvent(s.session, kind, s.clock.Remaining())
	event.Packed = packed

	s.logger.Debug("countdown event",
		slog.String("session", s.session),
		slog.String("kind", string(kind)),
		slog.Int64("remaining", event.RemainingSeconds),
	)

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Warn("failed to record countdown event",
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
	}
}
