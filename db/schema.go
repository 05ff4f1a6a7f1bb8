// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types and defaults understood by both postgres and sqlite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    google_id TEXT UNIQUE,
    avatar_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Pools
CREATE TABLE IF NOT EXISTS pool (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    owner_id TEXT REFERENCES app_user(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pool_owner_id ON pool(owner_id);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    pool_id TEXT NOT NULL REFERENCES pool(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (pool_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_participant_user_id ON participant(user_id);

-- Games
CREATE TABLE IF NOT EXISTS game (
    id TEXT PRIMARY KEY,
    starts_at TIMESTAMP NOT NULL,
    first_team_country_code TEXT NOT NULL,
    second_team_country_code TEXT NOT NULL
);

-- Guesses
CREATE TABLE IF NOT EXISTS guess (
    id TEXT PRIMARY KEY,
    first_team_points INTEGER NOT NULL,
    second_team_points INTEGER NOT NULL,
    game_id TEXT NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (participant_id, game_id)
);

CREATE INDEX IF NOT EXISTS idx_guess_game_id ON guess(game_id);
`
