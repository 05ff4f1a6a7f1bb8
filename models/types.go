package models

import "time"

// PreviewSize is the number of participants returned with each listed pool
const PreviewSize = 4

// Request types

// Pointer fields distinguish a missing key from an empty string.

type CreatePoolRequest struct {
	Title *string `json:"title"`
}

func (r CreatePoolRequest) Validate() error {
	if r.Title == nil {
		return ValidationError{Field: "title"}
	}
	return nil
}

type JoinPoolRequest struct {
	Code *string `json:"code"`
}

func (r JoinPoolRequest) Validate() error {
	if r.Code == nil {
		return ValidationError{Field: "code"}
	}
	return nil
}

type CreateUserRequest struct {
	AccessToken *string `json:"access_token"`
}

func (r CreateUserRequest) Validate() error {
	if r.AccessToken == nil || *r.AccessToken == "" {
		return ValidationError{Field: "access_token"}
	}
	return nil
}

// Response types

type CountResponse struct {
	Count int `json:"count"`
}

type CreatePoolResponse struct {
	Code string `json:"code"`
}

type ListPoolsResponse struct {
	Pools []PoolSummary `json:"pools"`
}

type CreateUserResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	User Identity `json:"user"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GoogleID  *string   `json:"-"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the caller as carried by a verified bearer token
type Identity struct {
	Sub       string  `json:"sub"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type Pool struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	OwnerID   *string   `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ParticipantPreview struct {
	ID   string     `json:"id"`
	User UserAvatar `json:"user"`
}

type UserAvatar struct {
	AvatarURL *string `json:"avatar_url"`
}

type OwnerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PoolSummary is a pool as listed for one of its participants
type PoolSummary struct {
	Pool
	ParticipantCount int                  `json:"participant_count"`
	Participants     []ParticipantPreview `json:"participants"`
	Owner            *OwnerSummary        `json:"owner"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationError reports a malformed request body
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return e.Field + " is required"
}
