package services

import (
	"context"
	"time"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
	"golang.org/x/sync/errgroup"
)

type GroupStandings struct {
	Group   models.Group           `json:"group"`
	Entries []models.StandingEntry `json:"entries"`
}

type GroupSpecials struct {
	Group   models.Group           `json:"group"`
	Round   *int                   `json:"round,omitempty"`
	Entries []models.SpecialsEntry `json:"entries"`
}

// TournamentReport is the final picture of a tournament: both groups' standings and specials.
type TournamentReport struct {
	Tournament  models.Tournament `json:"tournament"`
	Standings   []GroupStandings  `json:"standings"`
	Specials    []GroupSpecials   `json:"specials"`
	GeneratedAt time.Time         `json:"generated_at"`
}

type StandingsService interface {
	Standings(ctx context.Context, tournamentID int, group *models.Group) ([]GroupStandings, error)
	SpecialsRanking(ctx context.Context, tournamentID int, group *models.Group, round *int) ([]GroupSpecials, error)
	Report(ctx context.Context, tournamentID int) (*TournamentReport, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	specialRepo    repositories.SpecialRepository
	now            func() time.Time
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	specialRepo repositories.SpecialRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		specialRepo:    specialRepo,
		now:            time.Now,
	}
}

type resultsData struct {
	tournament *models.Tournament
	players    []models.Player
	stats      []models.PlayerRoundStat
}

// loadResults reads everything standings need in parallel and aggregates it per player and round.
func (s *standingsService) loadResults(ctx context.Context, tournamentID int) (*resultsData, error) {
	var (
		data     resultsData
		matches  []models.Match
		specials []models.MatchSpecial
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.tournament, err = s.tournamentRepo.GetByID(gctx, nil, tournamentID)
		return handleRepositoryError(err, "get tournament")
	})
	g.Go(func() error {
		var err error
		data.players, err = s.playerRepo.ListByTournament(gctx, tournamentID, nil)
		return handleRepositoryError(err, "list players")
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID, nil, nil)
		return handleRepositoryError(err, "list matches")
	})
	g.Go(func() error {
		var err error
		specials, err = s.specialRepo.ListByTournament(gctx, nil, tournamentID)
		return handleRepositoryError(err, "list specials")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.stats = brackets.AggregateRoundStats(matches, specials)
	return &data, nil
}

func (d *resultsData) standings(groups []models.Group) []GroupStandings {
	out := make([]GroupStandings, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupStandings{
			Group:   g,
			Entries: brackets.CalculateStandings(playersOfGroup(d.players, g), d.stats),
		})
	}
	return out
}

func (d *resultsData) specials(groups []models.Group, round *int) []GroupSpecials {
	out := make([]GroupSpecials, 0, len(groups))
	for _, g := range groups {
		totals := brackets.SpecialsTotals(playersOfGroup(d.players, g), d.stats, round)
		out = append(out, GroupSpecials{
			Group:   g,
			Round:   round,
			Entries: brackets.RankSpecials(totals),
		})
	}
	return out
}

func (s *standingsService) Standings(ctx context.Context, tournamentID int, group *models.Group) ([]GroupStandings, error) {
	data, err := s.loadResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return data.standings(groupsOrAll(group)), nil
}

func (s *standingsService) SpecialsRanking(ctx context.Context, tournamentID int, group *models.Group, round *int) ([]GroupSpecials, error) {
	data, err := s.loadResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return data.specials(groupsOrAll(group), round), nil
}

func (s *standingsService) Report(ctx context.Context, tournamentID int) (*TournamentReport, error) {
	data, err := s.loadResults(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return &TournamentReport{
		Tournament:  *data.tournament,
		Standings:   data.standings(models.AllGroups),
		Specials:    data.specials(models.AllGroups, nil),
		GeneratedAt: s.now().UTC(),
	}, nil
}
