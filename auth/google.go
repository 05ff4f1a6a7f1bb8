// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Profile is the subset of a Google account used to create users
type Profile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// ProfileFetcher resolves an OAuth access token to the account behind it
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (Profile, error)
}

// GoogleProfiles reads the userinfo endpoint with the caller's access token.
type GoogleProfiles struct {
	// Options are appended after the token source, e.g. option.WithEndpoint in tests
	Options []option.ClientOption
}

func (g GoogleProfiles) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, g.Options...)

	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return Profile{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if info.Id == "" || info.Email == "" {
		return Profile{}, errors.New("google profile is missing id or email")
	}

	return Profile{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
