// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pickpool API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, auth.GoogleProfiles{})

# Endpoints

Health:

	GET /health

Pools:

	GET  /pools/count     - Number of pools
	POST /pools           - Create pool (bearer token optional)
	POST /pools/{id}/join - Join by code (bearer token required)
	GET  /pools           - Caller's pools (bearer token required)

Counts:

	GET /guesses/count
	GET /users/count

Users:

	POST /users - Exchange a Google access token for a bearer token
	GET  /me    - Caller's identity (bearer token required)

# Handler Initialization

The router builds one db.Store and one auth.Issuer and hands them to the
handlers. Routes that need a caller are wrapped in middleware.RequireAuth.
*/
package router
