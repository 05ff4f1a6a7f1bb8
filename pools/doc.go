// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pools holds the rules for creating, joining, counting, and listing
pools.

	svc := pools.NewService(db.NewStore(conn))
	code, err := svc.CreatePool(ctx, "World Cup 2026", nil)

# Ownership

A pool created by an authenticated caller is owned by that caller, who is
also its first participant. A pool created anonymously has no owner until
the first authenticated user joins it:

	owner unset ──first join──▶ owner set

Ownership never changes after that. The claim is a conditional update run in
the same transaction as the participant insert, so concurrent first joins
produce exactly one owner.

# Errors

	ErrPoolNotFound   no pool has the code
	ErrAlreadyJoined  the caller is already a participant
	ErrCodeExhausted  every generated code collided

Storage failures are returned as-is.
*/
package pools
