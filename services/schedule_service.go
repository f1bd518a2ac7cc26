package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
	"golang.org/x/sync/errgroup"
)

type ScheduleService interface {
	// GenerateInitialRounds persists rounds 1 and 2 for both groups and activates the tournament.
	GenerateInitialRounds(ctx context.Context, actor Actor, tournamentID int) ([]models.Match, error)
	Readiness(ctx context.Context, tournamentID int, role models.UserRole) (brackets.ReadinessReport, error)
	GenerateRound3(ctx context.Context, actor Actor, tournamentID int) ([]models.Match, error)
}

type scheduleService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	courtRepo      repositories.CourtRepository
	matchRepo      repositories.MatchRepository
	specialRepo    repositories.SpecialRepository
	notifier       Notifier
	logger         *slog.Logger
}

func NewScheduleService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	courtRepo repositories.CourtRepository,
	matchRepo repositories.MatchRepository,
	specialRepo repositories.SpecialRepository,
	notifier Notifier,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		courtRepo:      courtRepo,
		matchRepo:      matchRepo,
		specialRepo:    specialRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *scheduleService) GenerateInitialRounds(ctx context.Context, actor Actor, tournamentID int) ([]models.Match, error) {
	if !brackets.CanGenerateRounds(actor.Role) {
		return nil, brackets.ErrUnauthorized
	}
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	if err := authorizeOrganizer(t, actor); err != nil {
		return nil, fmt.Errorf("%w: not the tournament organizer", brackets.ErrUnauthorized)
	}
	if t.Rounds12Generated {
		return nil, ErrScheduleAlreadyGenerated
	}
	if t.Status != models.StatusRegistration && t.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: cannot schedule a %s tournament", ErrTournamentInvalidStatus, t.Status)
	}

	players, courts, err := s.loadRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rosters := make([]brackets.GroupRoster, 0, len(models.AllGroups))
	for _, g := range models.AllGroups {
		rosters = append(rosters, brackets.GroupRoster{
			Group:   g,
			Players: playersOfGroup(players, g),
			Courts:  courtsOfGroup(courts, g),
		})
	}
	scheduled, err := brackets.BuildTournamentSchedule(rosters, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule for tournament %d: %w", tournamentID, err)
	}

	created := toMatchModels(scheduled, tournamentID)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.MarkRounds12Generated(ctx, exec, tournamentID); err != nil {
			if errors.Is(err, repositories.ErrRoundsAlreadyGenerated) {
				return ErrScheduleAlreadyGenerated
			}
			return err
		}
		if err := s.matchRepo.BatchCreate(ctx, exec, created); err != nil {
			if errors.Is(err, repositories.ErrMatchConflict) {
				return ErrScheduleAlreadyGenerated
			}
			return err
		}
		if t.Status == models.StatusRegistration {
			return s.tournamentRepo.UpdateStatus(ctx, exec, tournamentID, models.StatusActive)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save schedule for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("rounds 1-2 generated", slog.Int("tournament_id", tournamentID), slog.Int("matches", len(created)))
	matches := derefMatches(created)
	notifyTournament(s.notifier, tournamentID, brackets.EventScheduleGenerated, matches)
	return matches, nil
}

func (s *scheduleService) Readiness(ctx context.Context, tournamentID int, role models.UserRole) (brackets.ReadinessReport, error) {
	snapshot, _, err := s.loadSnapshot(ctx, tournamentID, role)
	if err != nil {
		return brackets.ReadinessReport{}, err
	}
	return brackets.EvaluateReadiness(snapshot), nil
}

// loadSnapshot reads the tournament and its matches in parallel.
func (s *scheduleService) loadSnapshot(ctx context.Context, tournamentID int, role models.UserRole) (brackets.ReadinessSnapshot, *models.Tournament, error) {
	var (
		t       *models.Tournament
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.tournamentRepo.GetByID(gctx, nil, tournamentID)
		return handleRepositoryError(err, "get tournament")
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID, nil, nil)
		return handleRepositoryError(err, "list matches")
	})
	if err := g.Wait(); err != nil {
		return brackets.ReadinessSnapshot{}, nil, err
	}
	return brackets.ReadinessSnapshot{
		TournamentStatus: t.Status,
		Round3Flag:       t.Round3Generated,
		Matches:          matches,
		Role:             role,
	}, t, nil
}

// GenerateRound3 re-checks readiness inside the transaction that writes round 3,
// so two concurrent calls cannot both pass the gate.
func (s *scheduleService) GenerateRound3(ctx context.Context, actor Actor, tournamentID int) ([]models.Match, error) {
	players, courts, err := s.loadRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var created []*models.Match
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetByID(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err, "get tournament")
		}
		matches, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, nil, nil)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		report := brackets.EvaluateReadiness(brackets.ReadinessSnapshot{
			TournamentStatus: t.Status,
			Round3Flag:       t.Round3Generated,
			Matches:          matches,
			Role:             actor.Role,
		})
		if err := report.Err(); err != nil {
			return err
		}
		if err := authorizeOrganizer(t, actor); err != nil {
			return fmt.Errorf("%w: not the tournament organizer", brackets.ErrUnauthorized)
		}

		specials, err := s.specialRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("list specials: %w", err)
		}
		stats := brackets.AggregateRoundStats(matches, specials)

		var scheduled []brackets.ScheduledMatch
		for _, g := range models.AllGroups {
			seeded := brackets.SeedPlayers(playersOfGroup(players, g))
			groupMatches, err := brackets.BuildRound3(brackets.Round3Params{
				Group:  g,
				Lines:  brackets.CombineRounds(seeded, stats, 1, 2),
				Courts: courtsOfGroup(courts, g),
			})
			if err != nil {
				return err
			}
			scheduled = append(scheduled, groupMatches...)
		}

		maxNumber, err := s.matchRepo.MaxMatchNumber(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("max match number: %w", err)
		}
		created = toMatchModels(brackets.NumberMatches(scheduled, maxNumber+1), tournamentID)

		if err := s.tournamentRepo.MarkRound3Generated(ctx, exec, tournamentID); err != nil {
			if errors.Is(err, repositories.ErrRoundsAlreadyGenerated) {
				return brackets.ErrAlreadyGenerated
			}
			return err
		}
		if err := s.matchRepo.BatchCreate(ctx, exec, created); err != nil {
			if errors.Is(err, repositories.ErrMatchConflict) {
				return brackets.ErrAlreadyGenerated
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("round 3 generated", slog.Int("tournament_id", tournamentID), slog.Int("matches", len(created)))
	matches := derefMatches(created)
	notifyTournament(s.notifier, tournamentID, brackets.EventRound3Generated, matches)
	return matches, nil
}

func (s *scheduleService) loadRoster(ctx context.Context, tournamentID int) ([]models.Player, []models.Court, error) {
	var (
		players []models.Player
		courts  []models.Court
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByTournament(gctx, tournamentID, nil)
		return handleRepositoryError(err, "list players")
	})
	g.Go(func() error {
		var err error
		courts, err = s.courtRepo.ListByTournament(gctx, tournamentID, nil)
		return handleRepositoryError(err, "list courts")
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return players, courts, nil
}

func toMatchModels(scheduled []brackets.ScheduledMatch, tournamentID int) []*models.Match {
	out := make([]*models.Match, 0, len(scheduled))
	for _, sm := range scheduled {
		out = append(out, sm.ToModel(tournamentID))
	}
	return out
}

func derefMatches(ms []*models.Match) []models.Match {
	out := make([]models.Match, len(ms))
	for i, m := range ms {
		out[i] = *m
	}
	return out
}
