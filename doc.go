// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pickpool API server.

pickpool is the backend of a prediction-pool app: users create pools, share a
6-character code, and friends join with it.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=pickpool.db JWT_SECRET=... go run .

Or with flags, against postgres:

	go run . -p 3333 -t postgres -d "postgres://..." --jwt-secret ...

A .env file in the working directory is read as well.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or postgres connection string
  - JWT_SECRET (--jwt-secret): Secret for bearer token signatures

Optional settings:

  - PORT (-p): Server port (default: 3333)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (--token-ttl): Token lifetime (default: 168h)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (pools, counts, users)
  - pools: Pool creation, joining, and listing rules
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer auth
  - models: Request/response types
  - auth: Pool codes, JWT issuer, Google profiles
  - db: Driver selection, schema creation, SQL store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
