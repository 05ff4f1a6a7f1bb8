// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/middleware"
	"github.com/danielhkuo/pickpool/models"
	"github.com/danielhkuo/pickpool/pools"
	"github.com/danielhkuo/pickpool/testutil"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func newPoolHandler(conn *sql.DB) *PoolHandler {
	return NewPoolHandler(pools.NewService(db.NewStore(conn)), testutil.GetTestIssuer())
}

func TestCountPools(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := newPoolHandler(conn)

	testutil.CreateTestPool(t, conn, "One", nil)
	testutil.CreateTestPool(t, conn, "Two", nil)

	w := httptest.NewRecorder()
	handler.CountPools(w, testutil.MakeRequest("GET", "/pools/count", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CountResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Errorf("Expected count 2, got %d", resp.Count)
	}
}

func TestCreatePool(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := newPoolHandler(conn)
	alice := testutil.CreateTestUser(t, conn, "Alice")

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		expectOwner    bool
	}{
		{
			name:           "anonymous",
			body:           models.CreatePoolRequest{Title: strPtr("World Cup 2026")},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "with bearer token",
			body:           models.CreatePoolRequest{Title: strPtr("Office pool")},
			headers:        testutil.BearerHeader(t, alice),
			expectedStatus: http.StatusCreated,
			expectOwner:    true,
		},
		{
			name:           "invalid token falls back to anonymous",
			body:           models.CreatePoolRequest{Title: strPtr("Stranger pool")},
			headers:        map[string]string{"Authorization": "Bearer not-a-jwt"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty title accepted",
			body:           models.CreatePoolRequest{Title: strPtr("")},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "title of wrong type",
			body:           `{"title": 42}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreatePool(w, testutil.MakeRequest("POST", "/pools", tt.body, tt.headers))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreatePoolResponse
			testutil.AssertJSON(t, w, &resp)
			if !codePattern.MatchString(resp.Code) {
				t.Fatalf("Unexpected pool code %q", resp.Code)
			}

			var owner *string
			if err := conn.QueryRow("SELECT owner_id FROM pool WHERE code = $1", resp.Code).Scan(&owner); err != nil {
				t.Fatalf("Failed to load created pool: %v", err)
			}
			if tt.expectOwner {
				if owner == nil || *owner != alice.ID {
					t.Errorf("Expected owner %s, got %v", alice.ID, owner)
				}
			} else if owner != nil {
				t.Errorf("Expected no owner, got %s", *owner)
			}
		})
	}
}

func TestJoinPool(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := middleware.RequireAuth(testutil.GetTestIssuer(), newPoolHandler(conn).JoinPool)

	alice := testutil.CreateTestUser(t, conn, "Alice")
	bob := testutil.CreateTestUser(t, conn, "Bob")
	pool := testutil.CreateTestPool(t, conn, "Owned", &alice.ID)

	tests := []struct {
		name            string
		body            interface{}
		headers         map[string]string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "no token",
			body:            models.JoinPoolRequest{Code: &pool.Code},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Missing bearer token",
		},
		{
			name:            "bad token",
			body:            models.JoinPoolRequest{Code: &pool.Code},
			headers:         map[string]string{"Authorization": "Bearer garbage"},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unknown code",
			body:            models.JoinPoolRequest{Code: strPtr("ZZZZZZ")},
			headers:         testutil.BearerHeader(t, bob),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgPoolNotFound,
		},
		{
			name:            "missing code",
			body:            `{}`,
			headers:         testutil.BearerHeader(t, bob),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "code is required",
		},
		{
			name:           "first join",
			body:           models.JoinPoolRequest{Code: &pool.Code},
			headers:        testutil.BearerHeader(t, bob),
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "second join",
			body:            models.JoinPoolRequest{Code: &pool.Code},
			headers:         testutil.BearerHeader(t, bob),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgAlreadyJoined,
		},
		{
			name:            "owner joining own pool",
			body:            models.JoinPoolRequest{Code: &pool.Code},
			headers:         testutil.BearerHeader(t, alice),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgAlreadyJoined,
		},
	}

	// Cases run in order; "second join" depends on "first join"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/pools/"+pool.ID+"/join", tt.body, tt.headers)
			w := httptest.NewRecorder()
			handler(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedMessage == "" {
				if w.Body.Len() != 0 {
					t.Errorf("Expected empty body, got %s", w.Body.String())
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.expectedMessage {
				t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
		})
	}

	if n := testutil.CountRows(t, conn, "participant", "pool_id = $1", pool.ID); n != 2 {
		t.Errorf("Expected 2 participants, got %d", n)
	}
}

func TestJoinPool_ClaimsOwnerlessPool(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := middleware.RequireAuth(testutil.GetTestIssuer(), newPoolHandler(conn).JoinPool)

	bob := testutil.CreateTestUser(t, conn, "Bob")
	pool := testutil.CreateTestPool(t, conn, "Anonymous", nil)

	// path segment is not used to find the pool
	req := testutil.MakeRequest("POST", "/pools/anything/join", models.JoinPoolRequest{Code: &pool.Code}, testutil.BearerHeader(t, bob))
	w := httptest.NewRecorder()
	handler(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	owner := testutil.PoolOwner(t, conn, pool.ID)
	if owner == nil || *owner != bob.ID {
		t.Errorf("Expected owner %s, got %v", bob.ID, owner)
	}
}

// A validly signed token whose user is gone, e.g. after a database reset
func TestPoolHandlers_DeletedUserToken(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := newPoolHandler(conn)

	gone := models.User{ID: "deleted-user", Name: "Ghost"}
	headers := testutil.BearerHeader(t, gone)

	w := httptest.NewRecorder()
	handler.CreatePool(w, testutil.MakeRequest("POST", "/pools", models.CreatePoolRequest{Title: strPtr("Orphan")}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreatePoolResponse
	testutil.AssertJSON(t, w, &created)

	var owner *string
	if err := conn.QueryRow("SELECT owner_id FROM pool WHERE code = $1", created.Code).Scan(&owner); err != nil {
		t.Fatalf("Failed to load created pool: %v", err)
	}
	if owner != nil {
		t.Errorf("Expected anonymous pool, got owner %s", *owner)
	}

	join := middleware.RequireAuth(testutil.GetTestIssuer(), handler.JoinPool)
	w = httptest.NewRecorder()
	join(w, testutil.MakeRequest("POST", "/pools/x/join", models.JoinPoolRequest{Code: &created.Code}, headers))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Unknown user" {
		t.Errorf("Expected message %q, got %q", "Unknown user", resp.Message)
	}
	if n := testutil.CountRows(t, conn, "participant", ""); n != 0 {
		t.Errorf("Expected no participants, got %d", n)
	}
}

func TestListPools(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := middleware.RequireAuth(testutil.GetTestIssuer(), newPoolHandler(conn).ListPools)

	alice := testutil.CreateTestUser(t, conn, "Alice")
	bob := testutil.CreateTestUser(t, conn, "Bob")

	t.Run("no pools", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/pools", nil, testutil.BearerHeader(t, bob)))

		testutil.AssertStatus(t, w, http.StatusOK)
		if got := w.Body.String(); got != "{\"pools\":[]}\n" {
			t.Errorf("Expected empty pools array, got %s", got)
		}
	})

	pool := testutil.CreateTestPool(t, conn, "Shared", &alice.ID)
	testutil.AddTestParticipant(t, conn, pool.ID, bob.ID)
	testutil.CreateTestPool(t, conn, "Alice only", &alice.ID)

	t.Run("member pools", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/pools", nil, testutil.BearerHeader(t, bob)))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListPoolsResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Pools) != 1 {
			t.Fatalf("Expected 1 pool, got %d", len(resp.Pools))
		}

		got := resp.Pools[0]
		if got.Code != pool.Code || got.Title != "Shared" {
			t.Errorf("Unexpected pool %+v", got.Pool)
		}
		if got.ParticipantCount != 2 || len(got.Participants) != 2 {
			t.Errorf("Expected 2 participants, got count %d preview %d", got.ParticipantCount, len(got.Participants))
		}
		if got.Owner == nil || got.Owner.Name != "Alice" {
			t.Errorf("Expected owner Alice, got %+v", got.Owner)
		}
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/pools", nil, nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestPoolHandlers_WithoutClaims(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	handler := newPoolHandler(conn)

	w := httptest.NewRecorder()
	handler.JoinPool(w, testutil.MakeRequest("POST", "/pools/x/join", `{"code":"ABC123"}`, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	handler.ListPools(w, testutil.MakeRequest("GET", "/pools", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func strPtr(s string) *string {
	return &s
}
