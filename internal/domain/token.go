package domain

import (
	"context"
	"time"
)

// RefreshToken is one login session's long-lived credential. Rows are never
// deleted; logout flips blocklisted so the audit trail survives revocation.
type RefreshToken struct {
	ID          string
	UserID      string
	Token       string
	Blocklisted bool
	CreatedAt   time.Time
}

// RefreshTokenRepository defines the interface for refresh token persistence.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	// GetActiveByUserID returns the user's non-blocklisted tokens, oldest
	// first. Multiple rows can accumulate when login is called repeatedly
	// without logout.
	GetActiveByUserID(ctx context.Context, userID string) ([]RefreshToken, error)
	Blocklist(ctx context.Context, tokenID string) error
}

// AccessTokenBlocklistRepository records revoked access token identifiers.
// Presence of a jti invalidates that token regardless of its expiry.
type AccessTokenBlocklistRepository interface {
	Insert(ctx context.Context, jti string) error
	Exists(ctx context.Context, jti string) (bool, error)
}
