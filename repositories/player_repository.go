package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Dosada05/doubles-cup/models"
)

var (
	ErrPlayerNameConflict      = errors.New("player name already registered in tournament")
	ErrPlayerTournamentInvalid = errors.New("player tournament conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (tournament_id, name, ranking_score, group_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.TournamentID, p.Name, p.RankingScore, p.Group).Scan(&p.ID, &p.CreatedAt)
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return ErrPlayerNameConflict
	case pqForeignKeyViolation:
		return ErrPlayerTournamentInvalid
	}
	return err
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Player, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT id, tournament_id, name, ranking_score, group_name, created_at
		FROM players
		WHERE tournament_id = $1`)
	args := []interface{}{tournamentID}
	if group != nil {
		qb.WriteString(" AND group_name = $" + strconv.Itoa(len(args)+1))
		args = append(args, *group)
	}
	qb.WriteString(" ORDER BY group_name, id")

	rows, err := r.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Name, &p.RankingScore, &p.Group, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
