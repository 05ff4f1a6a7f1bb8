// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Each has a Validate method returning a
ValidationError when a required key is absent:

  - CreatePoolRequest: title (empty string allowed)
  - JoinPoolRequest: code
  - CreateUserRequest: access_token

# Response Types

  - CountResponse: count
  - CreatePoolResponse: code
  - ListPoolsResponse: pools
  - CreateUserResponse: token
  - MeResponse: user
  - ErrorResponse: error, message

# Domain Types

  - User: account created from a Google profile
  - Identity: the caller as carried by a bearer token
  - Pool: group identified by a short join code, optionally owned
  - ParticipantPreview: participant ID and the user's avatar
  - PoolSummary: pool with participant count, preview, and owner

# Constants

Participant preview size per listed pool:

	PreviewSize = 4
*/
package models
