// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickpool/auth"
	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/middleware"
	"github.com/danielhkuo/pickpool/models"
)

type UserHandler struct {
	store    *db.Store
	issuer   *auth.Issuer
	profiles auth.ProfileFetcher
}

func NewUserHandler(store *db.Store, issuer *auth.Issuer, profiles auth.ProfileFetcher) *UserHandler {
	return &UserHandler{store: store, issuer: issuer, profiles: profiles}
}

// CreateUser handles POST /users
// Exchanges a Google access token for a user record and a bearer token
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profiles.FetchProfile(r.Context(), *req.AccessToken)
	if err != nil {
		slog.Info("google profile lookup failed", "error", err)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	user := models.User{
		Name:     profile.Name,
		Email:    profile.Email,
		GoogleID: &profile.ID,
	}
	if profile.Picture != "" {
		user.AvatarURL = &profile.Picture
	}

	stored, err := h.store.UpsertUser(r.Context(), user)
	if errors.Is(err, db.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to upsert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := h.issuer.Sign(stored)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("user signed in", "user_id", stored.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateUserResponse{Token: token})
}

// Me handles GET /me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{User: claims.Identity()})
}
