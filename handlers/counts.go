// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/middleware"
	"github.com/danielhkuo/pickpool/models"
)

type CountHandler struct {
	store *db.Store
}

func NewCountHandler(store *db.Store) *CountHandler {
	return &CountHandler{store: store}
}

// CountGuesses handles GET /guesses/count
func (h *CountHandler) CountGuesses(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "guesses", h.store.CountGuesses)
}

// CountUsers handles GET /users/count
func (h *CountHandler) CountUsers(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "users", h.store.CountUsers)
}

func (h *CountHandler) respond(w http.ResponseWriter, r *http.Request, what string, count func(context.Context) (int, error)) {
	n, err := count(r.Context())
	if err != nil {
		slog.Error("failed to count "+what, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: n})
}
