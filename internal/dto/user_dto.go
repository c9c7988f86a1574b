package dto

import "time"

// UserResponse is the public shape of a user record. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse is the paginated shape for GET /users.
type UserListResponse struct {
	TotalItems int64          `json:"total_items"`
	Users      []UserResponse `json:"users"`
}

// ListUsersQuery carries the raw query parameters for GET /users before
// validation against the sort-field whitelist.
type ListUsersQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"item"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
}
