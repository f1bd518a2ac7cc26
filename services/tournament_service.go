package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
	"golang.org/x/sync/errgroup"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, actor Actor, id int, status models.TournamentStatus) (*models.Tournament, error)

	AddPlayer(ctx context.Context, actor Actor, tournamentID int, input AddPlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, tournamentID int, group *models.Group) ([]models.Player, error)
	AddCourt(ctx context.Context, actor Actor, tournamentID int, input AddCourtInput) (*models.Court, error)
	ListCourts(ctx context.Context, tournamentID int, group *models.Group) ([]models.Court, error)
}

type CreateTournamentInput struct {
	Name string `json:"name"`
}

type AddPlayerInput struct {
	Name         string       `json:"name"`
	RankingScore float64      `json:"ranking_score"`
	Group        models.Group `json:"group"`
}

type AddCourtInput struct {
	Name      string       `json:"name"`
	MenuOrder int          `json:"menu_order"`
	Group     models.Group `json:"group"`
	IsActive  *bool        `json:"is_active,omitempty"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	courtRepo      repositories.CourtRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	courtRepo repositories.CourtRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		courtRepo:      courtRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error) {
	if !brackets.CanGenerateRounds(actor.Role) {
		return nil, ErrForbiddenOperation
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	t := &models.Tournament{
		Name:        name,
		OrganizerID: actor.UserID,
		Status:      models.StatusRegistration,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, handleRepositoryError(err, "create tournament")
	}
	s.logger.Info("tournament created", slog.Int("tournament_id", t.ID), slog.Int("organizer_id", t.OrganizerID))
	return t, nil
}

// GetTournament returns the tournament with its players, courts and matches loaded in parallel.
func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := s.playerRepo.ListByTournament(gctx, id, nil)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		t.Players = players
		return nil
	})
	g.Go(func() error {
		courts, err := s.courtRepo.ListByTournament(gctx, id, nil)
		if err != nil {
			return fmt.Errorf("list courts: %w", err)
		}
		t.Courts = courts
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gctx, nil, id, nil, nil)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		t.Matches = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %d details: %w", id, err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list tournaments")
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, actor Actor, id int, status models.TournamentStatus) (*models.Tournament, error) {
	if !validStatus(status) {
		return nil, ErrTournamentInvalidStatus
	}
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	if err := authorizeOrganizer(t, actor); err != nil {
		return nil, err
	}
	if !isValidStatusTransition(t.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, t.Status, status)
	}
	if t.Status == status {
		return t, nil
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, handleRepositoryError(err, "update tournament status")
	}
	s.logger.Info("tournament status changed",
		slog.Int("tournament_id", id), slog.String("from", string(t.Status)), slog.String("to", string(status)))
	t.Status = status
	return t, nil
}

func (s *tournamentService) editableRoster(ctx context.Context, actor Actor, tournamentID int) error {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return handleRepositoryError(err, "get tournament")
	}
	if err := authorizeOrganizer(t, actor); err != nil {
		return err
	}
	if t.Status != models.StatusRegistration || t.Rounds12Generated {
		return ErrRosterLocked
	}
	return nil
}

func (s *tournamentService) AddPlayer(ctx context.Context, actor Actor, tournamentID int, input AddPlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || !input.Group.Valid() {
		return nil, fmt.Errorf("%w: player name and a valid group are required", ErrValidationFailed)
	}
	if err := s.editableRoster(ctx, actor, tournamentID); err != nil {
		return nil, err
	}

	group := input.Group
	existing, err := s.playerRepo.ListByTournament(ctx, tournamentID, &group)
	if err != nil {
		return nil, handleRepositoryError(err, "list players")
	}
	if len(existing) >= brackets.GroupSize {
		return nil, ErrGroupFull
	}

	p := &models.Player{
		TournamentID: tournamentID,
		Name:         name,
		RankingScore: input.RankingScore,
		Group:        input.Group,
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return nil, handleRepositoryError(err, "create player")
	}
	return p, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context, tournamentID int, group *models.Group) ([]models.Player, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	players, err := s.playerRepo.ListByTournament(ctx, tournamentID, group)
	if err != nil {
		return nil, handleRepositoryError(err, "list players")
	}
	return players, nil
}

func (s *tournamentService) AddCourt(ctx context.Context, actor Actor, tournamentID int, input AddCourtInput) (*models.Court, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || !input.Group.Valid() {
		return nil, fmt.Errorf("%w: court name and a valid group are required", ErrValidationFailed)
	}
	if err := s.editableRoster(ctx, actor, tournamentID); err != nil {
		return nil, err
	}

	c := &models.Court{
		TournamentID: tournamentID,
		Name:         name,
		MenuOrder:    input.MenuOrder,
		Group:        input.Group,
		IsActive:     input.IsActive == nil || *input.IsActive,
	}
	if err := s.courtRepo.Create(ctx, c); err != nil {
		return nil, handleRepositoryError(err, "create court")
	}
	return c, nil
}

func (s *tournamentService) ListCourts(ctx context.Context, tournamentID int, group *models.Group) ([]models.Court, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	courts, err := s.courtRepo.ListByTournament(ctx, tournamentID, group)
	if err != nil {
		return nil, handleRepositoryError(err, "list courts")
	}
	return courts, nil
}
