package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'player' CHECK (role IN ('player', 'organizer', 'admin')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tournaments (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    organizer_id INTEGER NOT NULL REFERENCES users(id),
    status TEXT NOT NULL DEFAULT 'registration'
        CHECK (status IN ('registration', 'active', 'completed', 'canceled')),
    rounds12_generated BOOLEAN NOT NULL DEFAULT FALSE,
    round3_generated BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS players (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    ranking_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    group_name TEXT NOT NULL CHECK (group_name IN ('groupA', 'groupB')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (tournament_id, name)
);

CREATE TABLE IF NOT EXISTS courts (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    menu_order INTEGER NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    group_name TEXT NOT NULL CHECK (group_name IN ('groupA', 'groupB')),
    UNIQUE (tournament_id, menu_order)
);

CREATE TABLE IF NOT EXISTS matches (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    group_name TEXT NOT NULL CHECK (group_name IN ('groupA', 'groupB')),
    round_number INTEGER NOT NULL CHECK (round_number BETWEEN 1 AND 3),
    round_within_group INTEGER NOT NULL CHECK (round_within_group BETWEEN 1 AND 3),
    match_number INTEGER NOT NULL,
    team1_player1_id INTEGER NOT NULL REFERENCES players(id),
    team1_player2_id INTEGER NOT NULL REFERENCES players(id),
    team2_player1_id INTEGER NOT NULL REFERENCES players(id),
    team2_player2_id INTEGER NOT NULL REFERENCES players(id),
    court_id INTEGER NOT NULL REFERENCES courts(id),
    score_team1 INTEGER CHECK (score_team1 >= 0),
    score_team2 INTEGER CHECK (score_team2 >= 0),
    status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'in_progress', 'completed')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (tournament_id, match_number),
    UNIQUE (tournament_id, group_name, round_number, court_id, round_within_group)
);

CREATE INDEX IF NOT EXISTS idx_matches_tournament_round ON matches(tournament_id, round_number);

CREATE TABLE IF NOT EXISTS match_specials (
    match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    player_id INTEGER NOT NULL REFERENCES players(id),
    count INTEGER NOT NULL CHECK (count >= 0),
    PRIMARY KEY (match_id, player_id)
);
`
