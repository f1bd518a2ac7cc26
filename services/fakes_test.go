package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/Dosada05/doubles-cup/brackets"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/Dosada05/doubles-cup/repositories"
	"github.com/Dosada05/doubles-cup/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is a shared in-memory backing for the fake repositories.
type memStore struct {
	mu          sync.Mutex
	tournaments map[int]*models.Tournament
	players     []models.Player
	courts      []models.Court
	matches     []models.Match
	specials    []models.MatchSpecial
	nextID      int
}

func newMemStore() *memStore {
	return &memStore{tournaments: make(map[int]*models.Tournament), nextID: 1}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeTournamentRepo struct{ s *memStore }

func (r fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.id()
	cp := *t
	r.s.tournaments[t.ID] = &cp
	return nil
}

func (r fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r fakeTournamentRepo) ListIDsByStatus(ctx context.Context, status models.TournamentStatus) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int
	for id, t := range r.s.tournaments {
		if t.Status == status {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r fakeTournamentRepo) MarkRounds12Generated(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.s.tournaments[id]
	if t == nil || t.Rounds12Generated {
		return repositories.ErrRoundsAlreadyGenerated
	}
	t.Rounds12Generated = true
	return nil
}

func (r fakeTournamentRepo) MarkRound3Generated(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.s.tournaments[id]
	if t == nil || t.Round3Generated {
		return repositories.ErrRoundsAlreadyGenerated
	}
	t.Round3Generated = true
	return nil
}

type fakePlayerRepo struct{ s *memStore }

func (r fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.players {
		if existing.TournamentID == p.TournamentID && existing.Name == p.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	p.ID = r.s.id()
	r.s.players = append(r.s.players, *p)
	return nil
}

func (r fakePlayerRepo) ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Player, 0)
	for _, p := range r.s.players {
		if p.TournamentID == tournamentID && (group == nil || p.Group == *group) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCourtRepo struct{ s *memStore }

func (r fakeCourtRepo) Create(ctx context.Context, c *models.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.courts = append(r.s.courts, *c)
	return nil
}

func (r fakeCourtRepo) ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Court, 0)
	for _, c := range r.s.courts {
		if c.TournamentID == tournamentID && (group == nil || c.Group == *group) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeMatchRepo struct{ s *memStore }

func (r fakeMatchRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range matches {
		for _, existing := range r.s.matches {
			if existing.TournamentID == m.TournamentID && existing.MatchNumber == m.MatchNumber {
				return fmt.Errorf("insert match #%d: %w", m.MatchNumber, repositories.ErrMatchConflict)
			}
		}
		m.ID = r.s.id()
		r.s.matches = append(r.s.matches, *m)
	}
	return nil
}

func (r fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.matches {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, round *int, group *models.Group) ([]models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range r.s.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if (round != nil && m.RoundNumber != *round) || (group != nil && m.Group != *group) {
			continue
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b models.Match) int { return a.MatchNumber - b.MatchNumber })
	return out, nil
}

func (r fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, s1, s2 *int, status models.MatchStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.matches {
		if r.s.matches[i].ID == id {
			r.s.matches[i].ScoreTeam1, r.s.matches[i].ScoreTeam2, r.s.matches[i].Status = s1, s2, status
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r fakeMatchRepo) MaxMatchNumber(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	for _, m := range r.s.matches {
		if m.TournamentID == tournamentID && m.MatchNumber > max {
			max = m.MatchNumber
		}
	}
	return max, nil
}

type fakeSpecialRepo struct{ s *memStore }

func (r fakeSpecialRepo) ReplaceForMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int, specials []models.MatchSpecial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.specials = slices.DeleteFunc(r.s.specials, func(sp models.MatchSpecial) bool { return sp.MatchID == matchID })
	r.s.specials = append(r.s.specials, specials...)
	return nil
}

func (r fakeSpecialRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.MatchSpecial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.specials), nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	rooms    map[string]int
	messages []brackets.WebSocketMessage
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{rooms: make(map[string]int)}
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message.(brackets.WebSocketMessage))
}

func (n *fakeNotifier) RoomSize(roomID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rooms[roomID]
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.messages))
	for _, m := range n.messages {
		out = append(out, m.Type)
	}
	return out
}

type fakeUploader struct {
	keys   []string
	bodies [][]byte
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	u.bodies = append(u.bodies, body)
	return &storage.UploadResult{Key: key, Location: "https://files.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *fakeUploader) GetPublicURL(key string) string { return "https://files.test/" + key }

// fixture wires every service over one memStore.
type fixture struct {
	store      *memStore
	notifier   *fakeNotifier
	tournament TournamentService
	schedule   ScheduleService
	matches    MatchService
	standings  StandingsService
}

func newFixture() *fixture {
	store := newMemStore()
	notifier := newFakeNotifier()
	tRepo, pRepo, cRepo := fakeTournamentRepo{store}, fakePlayerRepo{store}, fakeCourtRepo{store}
	mRepo, sRepo := fakeMatchRepo{store}, fakeSpecialRepo{store}
	logger := discardLogger()
	return &fixture{
		store:      store,
		notifier:   notifier,
		tournament: NewTournamentService(tRepo, pRepo, cRepo, mRepo, logger),
		schedule:   NewScheduleService(fakeTx{}, tRepo, pRepo, cRepo, mRepo, sRepo, notifier, logger),
		matches:    NewMatchService(fakeTx{}, tRepo, mRepo, sRepo, notifier, logger),
		standings:  NewStandingsService(tRepo, pRepo, mRepo, sRepo),
	}
}

var organizer = Actor{UserID: 7, Role: models.RoleOrganizer}

// seedTournament creates a tournament with 8 players and 2 courts in each group.
func (f *fixture) seedTournament(ctx context.Context) (int, error) {
	t, err := f.tournament.CreateTournament(ctx, organizer, CreateTournamentInput{Name: "Autumn Cup"})
	if err != nil {
		return 0, err
	}
	for gi, g := range models.AllGroups {
		for i := 1; i <= 8; i++ {
			_, err := f.tournament.AddPlayer(ctx, organizer, t.ID, AddPlayerInput{
				Name:         fmt.Sprintf("%s-P%d", g, i),
				RankingScore: float64(100 - i),
				Group:        g,
			})
			if err != nil {
				return 0, err
			}
		}
		for c := 1; c <= 2; c++ {
			_, err := f.tournament.AddCourt(ctx, organizer, t.ID, AddCourtInput{
				Name:      fmt.Sprintf("Court %d", gi*2+c),
				MenuOrder: gi*2 + c,
				Group:     g,
			})
			if err != nil {
				return 0, err
			}
		}
	}
	return t.ID, nil
}

// completeRound records a 5:3 result for every match of the given round.
func (f *fixture) completeRound(ctx context.Context, tournamentID, round int) error {
	matches, err := f.matches.ListMatches(ctx, tournamentID, &round, nil)
	if err != nil {
		return err
	}
	for _, m := range matches {
		five, three := 5, 3
		_, err := f.matches.RecordResult(ctx, organizer, m.ID, RecordResultInput{
			ScoreTeam1: &five,
			ScoreTeam2: &three,
			Status:     models.MatchStatusCompleted,
			Specials:   []SpecialInput{{PlayerID: m.Team1Player1ID, Count: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
