// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pickpool/auth"
	"github.com/danielhkuo/pickpool/cliparse"
	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/models"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// The file lives in the test's temp dir and is removed afterwards.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3333,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
	}
}

// GetTestIssuer returns the token issuer matching GetTestConfig
func GetTestIssuer() *auth.Issuer {
	cfg := GetTestConfig()
	return auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
}

// CreateTestUser inserts a user with an avatar and returns it
func CreateTestUser(t *testing.T, conn *sql.DB, name string) models.User {
	t.Helper()

	id := uuid.NewString()
	googleID := "google-" + id
	avatar := "https://avatars.example.com/" + id + ".png"
	user := models.User{
		ID:        id,
		Name:      name,
		Email:     id + "@example.com",
		GoogleID:  &googleID,
		AvatarURL: &avatar,
		CreatedAt: time.Now().UTC(),
	}

	_, err := conn.Exec(`
		INSERT INTO app_user (id, name, email, google_id, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.GoogleID, user.AvatarURL, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestPool inserts a pool; a non-nil owner is also added as participant
func CreateTestPool(t *testing.T, conn *sql.DB, title string, owner *string) models.Pool {
	t.Helper()
	return CreateTestPoolAt(t, conn, title, owner, time.Now().UTC())
}

// CreateTestPoolAt is CreateTestPool with an explicit creation time
func CreateTestPoolAt(t *testing.T, conn *sql.DB, title string, owner *string, createdAt time.Time) models.Pool {
	t.Helper()

	code, err := auth.GeneratePoolCode()
	if err != nil {
		t.Fatalf("Failed to generate pool code: %v", err)
	}

	pool := models.Pool{
		ID:        uuid.NewString(),
		Code:      code,
		Title:     title,
		OwnerID:   owner,
		CreatedAt: createdAt,
	}

	_, err = conn.Exec(`
		INSERT INTO pool (id, code, title, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pool.ID, pool.Code, pool.Title, pool.OwnerID, pool.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test pool: %v", err)
	}

	if owner != nil {
		AddTestParticipant(t, conn, pool.ID, *owner)
	}

	return pool
}

// AddTestParticipant adds a user to a pool and returns the participant ID
func AddTestParticipant(t *testing.T, conn *sql.DB, poolID, userID string) string {
	t.Helper()

	participantID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO participant (id, pool_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, participantID, poolID, userID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID
}

// AddTestGuess records a guess by the participant on a new game
func AddTestGuess(t *testing.T, conn *sql.DB, participantID string, first, second int) string {
	t.Helper()

	gameID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO game (id, starts_at, first_team_country_code, second_team_country_code)
		VALUES ($1, $2, 'BR', 'AR')
	`, gameID, time.Now().UTC().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Failed to create test game: %v", err)
	}

	guessID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO guess (id, first_team_points, second_team_points, game_id, participant_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, guessID, first, second, gameID, participantID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test guess: %v", err)
	}

	return guessID
}

// CountRows returns the number of rows in table matching the optional where clause
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// PoolOwner returns the owner_id of a pool, nil when unset
func PoolOwner(t *testing.T, conn *sql.DB, poolID string) *string {
	t.Helper()

	var owner *string
	if err := conn.QueryRow("SELECT owner_id FROM pool WHERE id = $1", poolID).Scan(&owner); err != nil {
		t.Fatalf("Failed to query pool owner: %v", err)
	}
	return owner
}

// BearerHeader returns request headers carrying a token for the user
func BearerHeader(t *testing.T, user models.User) map[string]string {
	t.Helper()

	token, err := GetTestIssuer().Sign(user)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// FakeProfiles resolves access tokens from a fixed map
type FakeProfiles map[string]auth.Profile

func (f FakeProfiles) FetchProfile(_ context.Context, accessToken string) (auth.Profile, error) {
	profile, ok := f[accessToken]
	if !ok {
		return auth.Profile{}, errors.New("invalid access token")
	}
	return profile, nil
}
