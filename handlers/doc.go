// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pickpool API.

# Handler Types

  - PoolHandler: Pool count, creation, joining, and listing
  - CountHandler: Guess and user counts
  - UserHandler: Sign-in with Google and current identity

Handlers are created with their collaborators:

	poolHandler := handlers.NewPoolHandler(pools.NewService(store), issuer)

# Pools

	GET  /pools/count     → CountPools
	POST /pools           → CreatePool (returns code)
	POST /pools/{id}/join → JoinPool (code in body)
	GET  /pools           → ListPools

CreatePool accepts an optional bearer token; a valid one makes the caller
owner and first participant. JoinPool and ListPools run behind
middleware.RequireAuth.

Domain errors are answered with 400 and a message:

	Pool not found!
	You already joined on this Pool!

# Users

	POST /users → CreateUser (Google access token in, bearer token out)
	GET  /me    → Me
*/
package handlers
