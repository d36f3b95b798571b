package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInvalidInterval is returned when the interval is not positive.
var ErrInvalidInterval = errors.New("reload interval must be positive")

// ErrNilFunc is returned when no reload function is given.
var ErrNilFunc = errors.New("reload function must not be nil")

// ErrStopped is returned when starting a scheduler that was already stopped.
var ErrStopped = errors.New("scheduler stopped")

// Func is invoked on every tick. The context is cancelled when the scheduler stops.
type Func func(ctx context.Context) error

// Scheduler invokes a Func periodically until it is stopped.
type Scheduler struct {
	name     string
	interval time.Duration
	fn       Func
	logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool

	attempts atomic.Uint64
	failures atomic.Uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used to report failed reloads.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a stopped Scheduler. Call Start to begin ticking.
func New(name string, interval time.Duration, fn Func, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	if fn == nil {
		return nil, ErrNilFunc
	}

	scheduler := &Scheduler{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   slog.Default(),
	}

	for _, apply := range opts {
		apply(scheduler)
	}

	return scheduler, nil
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the background loop. Starting a running scheduler is a no-op.
// The context only bounds the start call; the loop lives until Cancel or Stop.
func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}

	if s.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(loopCtx, s.done)

	s.logger.Debug("periodic reload started", slog.String("provider", s.name), slog.Duration("interval", s.interval))

	return nil
}

func (s *Scheduler) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.attempts.Add(1)

	err := s.fn(ctx)
	if err != nil && ctx.Err() == nil {
		s.failures.Add(1)
		s.logger.Warn("periodic reload failed", slog.String("provider", s.name), slog.Any("error", err))
	}
}

// Cancel signals the loop to stop and returns immediately. No new invocation
// starts once Cancel has returned. Cancel is idempotent.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true

	if s.cancel != nil {
		s.cancel()
	}
}

// Stop cancels the loop and waits for it to exit or for ctx to expire.
// It must not be called from inside the reload function.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.Cancel()

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s reload loop: %w", s.name, ctx.Err())
	}
}

// Attempts returns how many times the reload function has been invoked.
func (s *Scheduler) Attempts() uint64 {
	return s.attempts.Load()
}

// Failures returns how many invocations returned an error.
func (s *Scheduler) Failures() uint64 {
	return s.failures.Load()
}
