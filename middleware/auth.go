// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickpool/auth"
)

type claimsKey struct{}

// RequireAuth rejects requests without a valid bearer token. Verified claims
// are available to the next handler through ClaimsFrom.
func RequireAuth(issuer *auth.Issuer, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			slog.Info("rejected token", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// WithClaims stores verified claims in the context
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the claims stored by RequireAuth
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}
