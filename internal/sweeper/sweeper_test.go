package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	svc "notes-backend/internal/service"
)

// stubNoteService подменяет только SweepExpired, остальные методы
// интерфейса клинеру не нужны
type stubNoteService struct {
	svc.NoteService

	calls atomic.Int32
	fail  int32
}

func (s *stubNoteService) SweepExpired(ctx context.Context, retention time.Duration) (int, error) {
	call := s.calls.Add(1)
	if call <= s.fail {
		return 0, errors.New("storage unavailable")
	}
	return 3, nil
}

func TestSweeper_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	stub := &stubNoteService{}
	sw := New(stub, 30*24*time.Hour, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	// Первый проход выполняется сразу, без ожидания тикера
	deadline := time.After(2 * time.Second)
	for stub.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Expected immediate sweep on start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after context cancel")
	}
}

func TestSweeper_TicksOnSchedule(t *testing.T) {
	stub := &stubNoteService{}
	sw := New(stub, 30*24*time.Hour, time.Hour, zerolog.Nop())
	// Ускоряем расписание, сам interval остается часовым
	sw.newTicker = func(d time.Duration) *time.Ticker {
		return time.NewTicker(20 * time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for stub.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 sweeps, got %d", stub.calls.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestSweeper_RetriesAndSwallowsErrors(t *testing.T) {
	// Первый вызов падает, ретрай внутри того же прохода добивает
	stub := &stubNoteService{fail: 1}
	sw := New(stub, 30*24*time.Hour, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sw.sweep(ctx)

	if stub.calls.Load() < 2 {
		t.Errorf("Expected failed call to be retried, got %d calls", stub.calls.Load())
	}
}
