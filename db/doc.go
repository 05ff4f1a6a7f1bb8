// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema, and runs queries.

# Drivers

Open picks the driver from the configured type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")  // lib/pq
	conn, err := db.Open(db.TypeSQLite, "pickpool.db")        // modernc.org/sqlite

sqlite connections are limited to one open connection. Open adds the
foreign_keys and busy_timeout pragmas to the sqlite DSN and fails if foreign
keys are not enforced.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: Accounts created from Google profiles
  - pool: Pools with unique join code and optional owner
  - participant: One row per (pool, user)
  - game: Matches that can be guessed
  - guess: One guess per participant per game

# Relationships

	app_user 1──* pool (owner, nullable)
	pool *──* app_user (via participant)
	participant 1──* guess
	game 1──* guess

# Store

Store wraps *sql.DB with the application's queries. Unique constraint
failures from either driver surface as ErrDuplicate, foreign key failures
as ErrMissingReference, and missing rows as ErrNotFound.
*/
package db
