// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides pool codes, bearer tokens, and Google profile lookup.

# Pool Codes

Pool codes are 6 random characters from an alphabet without look-alikes
(no 0/O, 1/I/L):

	code, err := auth.GeneratePoolCode()  // e.g. "K7QZ3M"

Uniqueness is enforced by the database; callers retry on collision.

# Bearer Tokens

Issuer signs HS256 JWTs whose subject is the user ID:

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	token, err := issuer.Sign(user)
	claims, err := issuer.Verify(token)

Routes where identity is optional resolve it explicitly instead of failing:

	if claims, ok := issuer.TryResolve(r); ok {
		// authenticated caller
	}

# Google Profiles

GoogleProfiles exchanges an OAuth access token for the account's id, email,
name, and picture via the oauth2 v2 userinfo endpoint. Handlers depend on the
ProfileFetcher interface so tests can substitute a fake.
*/
package auth
