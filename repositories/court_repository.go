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
	ErrCourtMenuOrderConflict = errors.New("court menu order already used in tournament")
	ErrCourtTournamentInvalid = errors.New("court tournament conflict or invalid")
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Court, error)
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

func (r *postgresCourtRepository) Create(ctx context.Context, c *models.Court) error {
	query := `
		INSERT INTO courts (tournament_id, name, menu_order, is_active, group_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, c.TournamentID, c.Name, c.MenuOrder, c.IsActive, c.Group).Scan(&c.ID)
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return ErrCourtMenuOrderConflict
	case pqForeignKeyViolation:
		return ErrCourtTournamentInvalid
	}
	return err
}

func (r *postgresCourtRepository) ListByTournament(ctx context.Context, tournamentID int, group *models.Group) ([]models.Court, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT id, tournament_id, name, menu_order, is_active, group_name
		FROM courts
		WHERE tournament_id = $1`)
	args := []interface{}{tournamentID}
	if group != nil {
		qb.WriteString(" AND group_name = $" + strconv.Itoa(len(args)+1))
		args = append(args, *group)
	}
	qb.WriteString(" ORDER BY menu_order, id")

	rows, err := r.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var c models.Court
		if err := rows.Scan(&c.ID, &c.TournamentID, &c.Name, &c.MenuOrder, &c.IsActive, &c.Group); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}
