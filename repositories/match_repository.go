package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/doubles-cup/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchConflict    = errors.New("match slot or number already taken")
	ErrMatchRefsInvalid = errors.New("match references an unknown player, court or tournament")
)

type MatchRepository interface {
	// BatchCreate inserts all matches through exec; pass a transaction to keep it atomic.
	BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, round *int, group *models.Group) ([]models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreTeam1, scoreTeam2 *int, status models.MatchStatus) error
	MaxMatchNumber(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, group_name, round_number, round_within_group, match_number,
		       team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
		       court_id, score_team1, score_team2, status, created_at`

func (r *postgresMatchRepository) BatchCreate(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := getExecutor(exec, r.db)
	query := `
		INSERT INTO matches
			(tournament_id, group_name, round_number, round_within_group, match_number,
			 team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
			 court_id, score_team1, score_team2, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.Group, m.RoundNumber, m.RoundWithinGroup, m.MatchNumber,
			m.Team1Player1ID, m.Team1Player2ID, m.Team2Player1ID, m.Team2Player2ID,
			m.CourtID, m.ScoreTeam1, m.ScoreTeam2, m.Status,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert match #%d: %w", m.MatchNumber, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m, err := scanMatch(getExecutor(exec, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, roundFilter *int, groupFilter *models.Group) ([]models.Match, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)
	args := []interface{}{tournamentID}
	if roundFilter != nil {
		qb.WriteString(" AND round_number = $" + strconv.Itoa(len(args)+1))
		args = append(args, *roundFilter)
	}
	if groupFilter != nil {
		qb.WriteString(" AND group_name = $" + strconv.Itoa(len(args)+1))
		args = append(args, *groupFilter)
	}
	qb.WriteString(" ORDER BY match_number ASC")

	rows, err := getExecutor(exec, r.db).QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, scoreTeam1, scoreTeam2 *int, status models.MatchStatus) error {
	query := `UPDATE matches SET score_team1 = $1, score_team2 = $2, status = $3 WHERE id = $4`
	result, err := getExecutor(exec, r.db).ExecContext(ctx, query, scoreTeam1, scoreTeam2, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) MaxMatchNumber(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	var max int
	err := getExecutor(exec, r.db).QueryRowContext(ctx,
		`SELECT COALESCE(MAX(match_number), 0) FROM matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&max)
	return max, err
}

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var s1, s2 sql.NullInt64
	err := rowScanner.Scan(
		&m.ID, &m.TournamentID, &m.Group, &m.RoundNumber, &m.RoundWithinGroup, &m.MatchNumber,
		&m.Team1Player1ID, &m.Team1Player2ID, &m.Team2Player1ID, &m.Team2Player2ID,
		&m.CourtID, &s1, &s2, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s1.Valid {
		v := int(s1.Int64)
		m.ScoreTeam1 = &v
	}
	if s2.Valid {
		v := int(s2.Int64)
		m.ScoreTeam2 = &v
	}
	return &m, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %v", ErrMatchConflict, err)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %v", ErrMatchRefsInvalid, err)
	}
	return err
}
