package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/doubles-cup/models"
)

type SpecialRepository interface {
	// ReplaceForMatch overwrites every special recorded for a match.
	ReplaceForMatch(ctx context.Context, exec SQLExecutor, matchID int, specials []models.MatchSpecial) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.MatchSpecial, error)
}

type postgresSpecialRepository struct {
	db *sql.DB
}

func NewPostgresSpecialRepository(db *sql.DB) SpecialRepository {
	return &postgresSpecialRepository{db: db}
}

func (r *postgresSpecialRepository) ReplaceForMatch(ctx context.Context, exec SQLExecutor, matchID int, specials []models.MatchSpecial) error {
	executor := getExecutor(exec, r.db)
	if _, err := executor.ExecContext(ctx, `DELETE FROM match_specials WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to clear specials for match %d: %w", matchID, err)
	}
	for _, sp := range specials {
		if sp.Count == 0 {
			continue
		}
		_, err := executor.ExecContext(ctx,
			`INSERT INTO match_specials (match_id, player_id, count) VALUES ($1, $2, $3)`,
			matchID, sp.PlayerID, sp.Count)
		if err != nil {
			return fmt.Errorf("failed to store special for match %d player %d: %w", matchID, sp.PlayerID, err)
		}
	}
	return nil
}

func (r *postgresSpecialRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.MatchSpecial, error) {
	query := `
		SELECT ms.match_id, ms.player_id, ms.count
		FROM match_specials ms
		JOIN matches m ON m.id = ms.match_id
		WHERE m.tournament_id = $1
		ORDER BY ms.match_id, ms.player_id`

	rows, err := getExecutor(exec, r.db).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specials := make([]models.MatchSpecial, 0)
	for rows.Next() {
		var sp models.MatchSpecial
		if err := rows.Scan(&sp.MatchID, &sp.PlayerID, &sp.Count); err != nil {
			return nil, err
		}
		specials = append(specials, sp)
	}
	return specials, rows.Err()
}
