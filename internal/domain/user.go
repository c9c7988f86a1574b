package domain

import (
	"context"
	"time"
)

// User represents an account in the directory. Verified starts false and
// flips true exactly once, on successful email-token redemption.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

// UserSortFields whitelists the attribute names accepted by the list
// endpoint, mapped to their storage columns. Anything outside this map is
// rejected with a validation error instead of being passed through to the
// query builder.
var UserSortFields = map[string]string{
	"user_id":    "id",
	"username":   "username",
	"email":      "email",
	"verified":   "verified",
	"created_at": "created_at",
}

// ListUsersParams carries validated pagination and ordering for ListUsers.
type ListUsersParams struct {
	Page      int
	Limit     int
	SortBy    string // storage column, already whitelisted
	SortOrder string // "ASC" or "DESC"
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// MarkVerified flips the verified flag. Re-marking an already verified
	// user is harmless.
	MarkVerified(ctx context.Context, userID string) error
	ListUsers(ctx context.Context, params ListUsersParams) ([]User, int64, error)
}
