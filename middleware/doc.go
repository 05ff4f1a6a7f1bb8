// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status, duration_ms and client
IP. Responses with a 5xx status are logged at error level.

# Authentication

Routes that need a caller are gated by RequireAuth, which answers 401 for a
missing or invalid bearer token and otherwise stores the claims in the
request context:

	mux.HandleFunc("GET /pools", middleware.WithLogging(
		middleware.RequireAuth(issuer, poolHandler.ListPools)))

	claims, ok := middleware.ClaimsFrom(r.Context())

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Reflects the request Origin (or "*" without one), allows GET, POST and
OPTIONS with headers Content-Type and Authorization, and answers preflight
requests with 204.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most MaxBodyBytes):

	var req models.CreatePoolRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the client IP (first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr):

	ip := middleware.GetClientIP(r)
*/
package middleware
