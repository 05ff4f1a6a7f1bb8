// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickpool/auth"
	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/models"
)

// maxCodeAttempts bounds code regeneration after collisions
const maxCodeAttempts = 5

var (
	ErrPoolNotFound  = errors.New("pool not found")
	ErrAlreadyJoined = errors.New("already joined pool")
	ErrCodeExhausted = errors.New("no free pool code")
	ErrUnknownUser   = errors.New("user does not exist")
)

// Storage is the persistence the service needs. db.Store implements it.
type Storage interface {
	CountPools(ctx context.Context) (int, error)
	CreatePool(ctx context.Context, pool models.Pool) error
	FindPoolByCode(ctx context.Context, code, userID string) (models.Pool, bool, error)
	JoinPool(ctx context.Context, poolID, userID string, claimOwner bool) error
	ListPoolsByParticipant(ctx context.Context, userID string, previewSize int) ([]models.PoolSummary, error)
}

type Service struct {
	store   Storage
	newCode func() (string, error)
}

func NewService(store Storage) *Service {
	return &Service{store: store, newCode: auth.GeneratePoolCode}
}

func (s *Service) CountPools(ctx context.Context) (int, error) {
	return s.store.CountPools(ctx)
}

// CreatePool creates a pool and returns its join code. With a non-nil owner
// the pool is owned by that user, who also becomes its first participant.
// An owner that is not a stored user gets an anonymous pool instead.
func (s *Service) CreatePool(ctx context.Context, title string, owner *string) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}

		pool := models.Pool{
			ID:        uuid.NewString(),
			Code:      NormalizeCode(code),
			Title:     title,
			OwnerID:   owner,
			CreatedAt: time.Now().UTC(),
		}

		err = s.store.CreatePool(ctx, pool)
		if errors.Is(err, db.ErrMissingReference) && pool.OwnerID != nil {
			slog.Warn("pool owner not found, creating anonymous pool", "owner_id", *pool.OwnerID)
			pool.OwnerID = nil
			err = s.store.CreatePool(ctx, pool)
		}
		if errors.Is(err, db.ErrDuplicate) {
			slog.Warn("pool code collision", "code", pool.Code, "attempt", attempt)
			continue
		}
		if err != nil {
			return "", err
		}

		return pool.Code, nil
	}

	return "", fmt.Errorf("%w after %d attempts", ErrCodeExhausted, maxCodeAttempts)
}

// JoinPool adds userID to the pool with the given code. The first user to
// join a pool without an owner becomes its owner.
func (s *Service) JoinPool(ctx context.Context, code, userID string) error {
	pool, joined, err := s.store.FindPoolByCode(ctx, NormalizeCode(code), userID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrPoolNotFound
	}
	if err != nil {
		return err
	}

	if joined {
		return ErrAlreadyJoined
	}

	err = s.store.JoinPool(ctx, pool.ID, userID, pool.OwnerID == nil)
	switch {
	case errors.Is(err, db.ErrDuplicate):
		// lost a race with a concurrent join by the same user
		return ErrAlreadyJoined
	case errors.Is(err, db.ErrMissingReference):
		return ErrUnknownUser
	}
	return err
}

// ListPools returns the pools userID participates in.
func (s *Service) ListPools(ctx context.Context, userID string) ([]models.PoolSummary, error) {
	return s.store.ListPoolsByParticipant(ctx, userID, models.PreviewSize)
}

// NormalizeCode trims and uppercases a user-supplied pool code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
