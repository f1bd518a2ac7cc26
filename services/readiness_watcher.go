package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/coder/quartz"
)

type activeTournamentLister interface {
	ListIDsByStatus(ctx context.Context, status models.TournamentStatus) ([]int, error)
}

type readinessChecker interface {
	Readiness(ctx context.Context, tournamentID int, role models.UserRole) (brackets.ReadinessReport, error)
}

// ReadinessPayload is pushed to tournament rooms on every watcher tick.
type ReadinessPayload struct {
	TournamentID int                      `json:"tournament_id"`
	Report       brackets.ReadinessReport `json:"report"`
}

// ReadinessWatcher periodically evaluates round 3 readiness of active tournaments
// and pushes the result to rooms that have listeners.
type ReadinessWatcher struct {
	clock       quartz.Clock
	interval    time.Duration
	tournaments activeTournamentLister
	checker     readinessChecker
	notifier    Notifier
	logger      *slog.Logger
}

func NewReadinessWatcher(
	clock quartz.Clock,
	interval time.Duration,
	tournaments activeTournamentLister,
	checker readinessChecker,
	notifier Notifier,
	logger *slog.Logger,
) *ReadinessWatcher {
	return &ReadinessWatcher{
		clock:       clock,
		interval:    interval,
		tournaments: tournaments,
		checker:     checker,
		notifier:    notifier,
		logger:      logger,
	}
}

// Start registers the ticker and returns immediately. The returned waiter finishes when ctx is done.
func (w *ReadinessWatcher) Start(ctx context.Context) quartz.Waiter {
	w.logger.Info("readiness watcher started", slog.Duration("interval", w.interval))
	return w.clock.TickerFunc(ctx, w.interval, func() error {
		w.Tick(ctx)
		return nil
	}, "readiness")
}

// Tick runs one polling pass. Errors are logged; polling continues on the next tick.
func (w *ReadinessWatcher) Tick(ctx context.Context) {
	ids, err := w.tournaments.ListIDsByStatus(ctx, models.StatusActive)
	if err != nil {
		w.logger.Error("readiness watcher: list active tournaments failed", slog.Any("error", err))
		return
	}
	for _, id := range ids {
		if w.notifier.RoomSize(brackets.TournamentRoom(id)) == 0 {
			continue
		}
		// Отчёт строится с правами организатора: слушателям важен сам прогресс раундов.
		report, err := w.checker.Readiness(ctx, id, models.RoleOrganizer)
		if err != nil {
			w.logger.Error("readiness watcher: evaluation failed", slog.Int("tournament_id", id), slog.Any("error", err))
			continue
		}
		notifyTournament(w.notifier, id, brackets.EventRound3Readiness, ReadinessPayload{TournamentID: id, Report: report})
	}
}
