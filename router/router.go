// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pickpool/auth"
	"github.com/danielhkuo/pickpool/cliparse"
	"github.com/danielhkuo/pickpool/db"
	"github.com/danielhkuo/pickpool/handlers"
	"github.com/danielhkuo/pickpool/middleware"
	"github.com/danielhkuo/pickpool/pools"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config, profiles auth.ProfileFetcher) *http.ServeMux {
	mux := http.NewServeMux()

	store := db.NewStore(conn)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	poolHandler := handlers.NewPoolHandler(pools.NewService(store), issuer)
	countHandler := handlers.NewCountHandler(store)
	userHandler := handlers.NewUserHandler(store, issuer, profiles)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(issuer, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pools
	mux.HandleFunc("GET /pools/count", middleware.WithLogging(poolHandler.CountPools))
	mux.HandleFunc("POST /pools", middleware.WithLogging(poolHandler.CreatePool))
	mux.HandleFunc("POST /pools/{id}/join", authed(poolHandler.JoinPool))
	mux.HandleFunc("GET /pools", authed(poolHandler.ListPools))

	// Counts
	mux.HandleFunc("GET /guesses/count", middleware.WithLogging(countHandler.CountGuesses))
	mux.HandleFunc("GET /users/count", middleware.WithLogging(countHandler.CountUsers))

	// Users
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("GET /me", authed(userHandler.Me))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pickpool API v1"))
	})

	return mux
}
