package users

import (
	"time"
)

// User represents a tracked user. The ID is generated by the store and is
// exposed on the wire as "_id"; usernames are not unique.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
}

// CreateUserRequest represents the request to create a user. The binding tags
// accept both JSON and url-encoded form bodies.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}
