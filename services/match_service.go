package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
)

type MatchService interface {
	ListMatches(ctx context.Context, tournamentID int, round *int, group *models.Group) ([]models.Match, error)
	RecordResult(ctx context.Context, actor Actor, matchID int, input RecordResultInput) (*MatchResult, error)
}

type SpecialInput struct {
	PlayerID int `json:"player_id"`
	Count    int `json:"count"`
}

type RecordResultInput struct {
	ScoreTeam1 *int               `json:"score_team1"`
	ScoreTeam2 *int               `json:"score_team2"`
	Status     models.MatchStatus `json:"status"`
	Specials   []SpecialInput     `json:"specials,omitempty"`
}

// MatchResult is a match together with the specials recorded on it.
type MatchResult struct {
	Match    models.Match          `json:"match"`
	Specials []models.MatchSpecial `json:"specials"`
}

type matchService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	specialRepo    repositories.SpecialRepository
	notifier       Notifier
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	specialRepo repositories.SpecialRepository,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		specialRepo:    specialRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int, round *int, group *models.Group) ([]models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, round, group)
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	return matches, nil
}

func validateResult(input RecordResultInput) error {
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, input.Status)
	}
	for _, score := range []*int{input.ScoreTeam1, input.ScoreTeam2} {
		if score != nil && (*score < 0 || *score > models.GamesPerMatch) {
			return ErrInvalidScore
		}
	}
	if input.Status == models.MatchStatusCompleted && (input.ScoreTeam1 == nil || input.ScoreTeam2 == nil) {
		return fmt.Errorf("%w: completed match needs both scores", ErrValidationFailed)
	}
	seen := make(map[int]bool, len(input.Specials))
	for _, sp := range input.Specials {
		if sp.Count < 0 {
			return fmt.Errorf("%w: specials count cannot be negative", ErrValidationFailed)
		}
		if seen[sp.PlayerID] {
			return fmt.Errorf("%w: player %d listed twice in specials", ErrValidationFailed, sp.PlayerID)
		}
		seen[sp.PlayerID] = true
	}
	return nil
}

// RecordResult stores scores, status and specials of one match in a single transaction.
// Completed matches whose scores do not add up to 8 games are stored but never count.
func (s *matchService) RecordResult(ctx context.Context, actor Actor, matchID int, input RecordResultInput) (*MatchResult, error) {
	if err := validateResult(input); err != nil {
		return nil, err
	}

	var result MatchResult
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			return handleRepositoryError(err, "get match")
		}
		t, err := s.tournamentRepo.GetByID(ctx, exec, m.TournamentID)
		if err != nil {
			return handleRepositoryError(err, "get tournament")
		}
		if err := authorizeOrganizer(t, actor); err != nil {
			return err
		}
		if t.Status != models.StatusActive {
			return ErrMatchNotEditable
		}

		specials := make([]models.MatchSpecial, 0, len(input.Specials))
		for _, sp := range input.Specials {
			if m.Team(sp.PlayerID) == 0 {
				return fmt.Errorf("%w: player %d", ErrPlayerNotInMatch, sp.PlayerID)
			}
			specials = append(specials, models.MatchSpecial{MatchID: m.ID, PlayerID: sp.PlayerID, Count: sp.Count})
		}

		if err := s.matchRepo.UpdateResult(ctx, exec, m.ID, input.ScoreTeam1, input.ScoreTeam2, input.Status); err != nil {
			return handleRepositoryError(err, "update match result")
		}
		if err := s.specialRepo.ReplaceForMatch(ctx, exec, m.ID, specials); err != nil {
			return err
		}

		m.ScoreTeam1, m.ScoreTeam2, m.Status = input.ScoreTeam1, input.ScoreTeam2, input.Status
		result = MatchResult{Match: *m, Specials: specials}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Match.Status == models.MatchStatusCompleted && !result.Match.IsValidComplete() {
		s.logger.Warn("completed match does not total 8 games",
			slog.Int("match_id", matchID), slog.Int("match_number", result.Match.MatchNumber))
	}
	notifyTournament(s.notifier, result.Match.TournamentID, brackets.EventMatchUpdated, result)
	return &result, nil
}
