// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3333)
  - DatabaseURL: postgres connection string or sqlite file path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Secret for signing bearer tokens (required)
  - TokenTTL: Lifetime of issued tokens (default: auth.DefaultTokenTTL, 168h)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--jwt-secret  JWT signing secret
	--token-ttl   Token lifetime (Go duration)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → --jwt-secret
	TOKEN_TTL     → --token-ttl

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded first and only fills variables that are unset.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - TOKEN_TTL must be a positive duration
*/
package cliparse
