package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/doubles-cup/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentInvalidOrg   = errors.New("invalid organizer reference")
	ErrRoundsAlreadyGenerated = errors.New("rounds already generated for tournament")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	ListIDsByStatus(ctx context.Context, status models.TournamentStatus) ([]int, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	// MarkRounds12Generated and MarkRound3Generated flip their flag only once;
	// a second call returns ErrRoundsAlreadyGenerated.
	MarkRounds12Generated(ctx context.Context, exec SQLExecutor, id int) error
	MarkRound3Generated(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, organizer_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.Name, t.OrganizerID, t.Status).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return ErrTournamentInvalidOrg
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, organizer_id, status, rounds12_generated, round3_generated, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := getExecutor(exec, r.db).QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.OrganizerID, &t.Status, &t.Rounds12Generated, &t.Round3Generated, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, organizer_id, status, rounds12_generated, round3_generated, created_at
		FROM tournaments
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.OrganizerID, &t.Status, &t.Rounds12Generated, &t.Round3Generated, &t.CreatedAt); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) ListIDsByStatus(ctx context.Context, status models.TournamentStatus) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tournaments WHERE status = $1 ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	result, err := getExecutor(exec, r.db).ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) MarkRounds12Generated(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE tournaments SET rounds12_generated = TRUE WHERE id = $1 AND rounds12_generated = FALSE`
	result, err := getExecutor(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundsAlreadyGenerated)
}

func (r *postgresTournamentRepository) MarkRound3Generated(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE tournaments SET round3_generated = TRUE WHERE id = $1 AND round3_generated = FALSE`
	result, err := getExecutor(exec, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRoundsAlreadyGenerated)
}
