// Package sweeper содержит фоновый клинер корзины: периодически
// окончательно удаляет заметки, пролежавшие в корзине дольше срока хранения.
package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	svc "notes-backend/internal/service"
)

// Sweeper периодически запускает очистку просроченных заметок из корзины.
// Ошибки отдельного запуска логируются и не прерывают расписание.
type Sweeper struct {
	noteService svc.NoteService
	retention   time.Duration
	interval    time.Duration
	log         zerolog.Logger

	// newTicker подменяется в тестах
	newTicker func(d time.Duration) *time.Ticker
}

// New создает новый экземпляр клинера.
// retention - срок хранения в корзине, interval - период между запусками.
func New(noteService svc.NoteService, retention, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		noteService: noteService,
		retention:   retention,
		interval:    interval,
		log:         log.With().Str("component", "sweeper").Logger(),
		newTicker:   time.NewTicker,
	}
}

// Run запускает клинер: первый проход сразу, дальше по тикеру,
// до отмены контекста. Блокирует вызывающую горутину.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep один проход очистки. Падение хранилища ретраится ограниченно
// внутри прохода; окончательная ошибка логируется и проглатывается,
// чтобы не сломать следующие запуски.
func (s *Sweeper) sweep(ctx context.Context) {
	var purged int

	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		purged, err = s.noteService.SweepExpired(ctx, s.retention)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("sweep run failed")
		return
	}

	s.log.Info().Int("purged", purged).Msg("sweep run completed")
}
