// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickpool/models"
)

// Store runs the application's queries against a postgres or sqlite database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountPools(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM pool")
}

func (s *Store) CountGuesses(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM guess")
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM app_user")
}

func (s *Store) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

// CreatePool inserts the pool and, when it has an owner, the owner's
// participant row in the same transaction. A taken code yields ErrDuplicate
// and an owner that is not a stored user yields ErrMissingReference.
func (s *Store) CreatePool(ctx context.Context, pool models.Pool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pool (id, code, title, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pool.ID, pool.Code, pool.Title, pool.OwnerID, pool.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrMissingReference
		}
		return fmt.Errorf("failed to insert pool: %w", err)
	}

	if pool.OwnerID != nil {
		if err := insertParticipant(ctx, tx, pool.ID, *pool.OwnerID, pool.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindPoolByCode returns the pool with the given code and whether userID
// already participates in it.
func (s *Store) FindPoolByCode(ctx context.Context, code, userID string) (models.Pool, bool, error) {
	var pool models.Pool
	var joined bool
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.code, p.title, p.owner_id, p.created_at,
		       EXISTS (SELECT 1 FROM participant pa WHERE pa.pool_id = p.id AND pa.user_id = $2)
		FROM pool p
		WHERE p.code = $1
	`, code, userID).Scan(&pool.ID, &pool.Code, &pool.Title, &pool.OwnerID, &pool.CreatedAt, &joined)

	if err == sql.ErrNoRows {
		return models.Pool{}, false, ErrNotFound
	}
	if err != nil {
		return models.Pool{}, false, fmt.Errorf("failed to query pool: %w", err)
	}

	return pool, joined, nil
}

// JoinPool adds userID to the pool. With claimOwner set, the user also
// becomes the owner unless another join claimed it first; ownership is never
// overwritten. An existing membership yields ErrDuplicate and an unknown user
// yields ErrMissingReference.
func (s *Store) JoinPool(ctx context.Context, poolID, userID string, claimOwner bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if claimOwner {
		_, err = tx.ExecContext(ctx, `
			UPDATE pool
			SET owner_id = $1
			WHERE id = $2 AND owner_id IS NULL
		`, userID, poolID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrMissingReference
			}
			return fmt.Errorf("failed to claim pool owner: %w", err)
		}
	}

	if err := insertParticipant(ctx, tx, poolID, userID, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertParticipant(ctx context.Context, tx *sql.Tx, poolID, userID string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO participant (id, pool_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), poolID, userID, at)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrMissingReference
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListPoolsByParticipant returns the pools userID belongs to, newest first.
// Each pool carries its participant count, its owner, and up to previewSize
// participants in join order.
func (s *Store) ListPoolsByParticipant(ctx context.Context, userID string, previewSize int) ([]models.PoolSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.code, p.title, p.owner_id, p.created_at,
		       (SELECT COUNT(*) FROM participant c WHERE c.pool_id = p.id),
		       o.id, o.name
		FROM pool p
		JOIN participant me ON me.pool_id = p.id AND me.user_id = $1
		LEFT JOIN app_user o ON o.id = p.owner_id
		ORDER BY p.created_at DESC, p.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pools: %w", err)
	}

	pools := []models.PoolSummary{}
	index := map[string]int{}
	for rows.Next() {
		var summary models.PoolSummary
		var ownerID, ownerName *string
		if err := rows.Scan(
			&summary.ID,
			&summary.Code,
			&summary.Title,
			&summary.OwnerID,
			&summary.CreatedAt,
			&summary.ParticipantCount,
			&ownerID,
			&ownerName,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		if ownerID != nil && ownerName != nil {
			summary.Owner = &models.OwnerSummary{ID: *ownerID, Name: *ownerName}
		}
		summary.Participants = []models.ParticipantPreview{}
		index[summary.ID] = len(pools)
		pools = append(pools, summary)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate pools: %w", err)
	}

	if len(pools) == 0 {
		return pools, nil
	}

	// Previews for every listed pool in one pass
	rows, err = s.db.QueryContext(ctx, `
		SELECT pool_id, id, avatar_url
		FROM (
			SELECT pa.pool_id, pa.id, u.avatar_url,
			       ROW_NUMBER() OVER (PARTITION BY pa.pool_id ORDER BY pa.created_at, pa.id) AS rn
			FROM participant pa
			JOIN app_user u ON u.id = pa.user_id
			WHERE pa.pool_id IN (SELECT pool_id FROM participant WHERE user_id = $1)
		) ranked
		WHERE rn <= $2
		ORDER BY pool_id, rn
	`, userID, previewSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var poolID string
		var preview models.ParticipantPreview
		if err := rows.Scan(&poolID, &preview.ID, &preview.User.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if i, ok := index[poolID]; ok {
			pools[i].Participants = append(pools[i].Participants, preview)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return pools, nil
}

// UpsertUser creates the user or refreshes the name and avatar of the user
// with the same Google ID, returning the stored record.
func (s *Store) UpsertUser(ctx context.Context, user models.User) (models.User, error) {
	if user.GoogleID == nil {
		return models.User{}, errors.New("google id is required")
	}

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO app_user (id, name, email, google_id, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (google_id) DO UPDATE SET
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url
		RETURNING id
	`, uuid.NewString(), user.Name, user.Email, user.GoogleID, user.AvatarURL, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.GetUser(ctx, id)
}

// GetUser returns the user with the given ID.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, google_id, avatar_url, created_at
		FROM app_user
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.GoogleID, &user.AvatarURL, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
