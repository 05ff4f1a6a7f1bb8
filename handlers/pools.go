// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickpool/auth"
	"github.com/danielhkuo/pickpool/middleware"
	"github.com/danielhkuo/pickpool/models"
	"github.com/danielhkuo/pickpool/pools"
)

// Messages returned to clients for pool domain errors
const (
	MsgPoolNotFound  = "Pool not found!"
	MsgAlreadyJoined = "You already joined on this Pool!"
)

type PoolHandler struct {
	service *pools.Service
	issuer  *auth.Issuer
}

func NewPoolHandler(service *pools.Service, issuer *auth.Issuer) *PoolHandler {
	return &PoolHandler{service: service, issuer: issuer}
}

// CountPools handles GET /pools/count
func (h *PoolHandler) CountPools(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountPools(r.Context())
	if err != nil {
		slog.Error("failed to count pools", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: count})
}

// CreatePool handles POST /pools
// A valid bearer token makes the caller owner and first participant;
// without one, or when the token's user no longer exists, the pool is
// created anonymously.
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePoolRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var owner *string
	if claims, ok := h.issuer.TryResolve(r); ok {
		owner = &claims.Subject
	}

	code, err := h.service.CreatePool(r.Context(), *req.Title, owner)
	if err != nil {
		slog.Error("failed to create pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pool")
		return
	}

	slog.Info("pool created", "code", code, "authenticated", owner != nil)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePoolResponse{Code: code})
}

// JoinPool handles POST /pools/{id}/join
// The pool is identified by the code in the body; the path segment is ignored.
func (h *PoolHandler) JoinPool(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	var req models.JoinPoolRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.service.JoinPool(r.Context(), *req.Code, claims.Subject)
	switch {
	case errors.Is(err, pools.ErrPoolNotFound):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgPoolNotFound)
		return
	case errors.Is(err, pools.ErrAlreadyJoined):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgAlreadyJoined)
		return
	case errors.Is(err, pools.ErrUnknownUser):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
		return
	case err != nil:
		slog.Error("failed to join pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join pool")
		return
	}

	slog.Info("pool joined", "code", pools.NormalizeCode(*req.Code), "user_id", claims.Subject)

	w.WriteHeader(http.StatusCreated)
}

// ListPools handles GET /pools
// Returns the pools the caller participates in
func (h *PoolHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	list, err := h.service.ListPools(r.Context(), claims.Subject)
	if err != nil {
		slog.Error("failed to list pools", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPoolsResponse{Pools: list})
}
