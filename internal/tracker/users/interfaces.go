package users

import (
	"context"

	"github.com/fitlog/fitlog/internal/tracker"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	DeleteAllUsers(ctx context.Context) (*tracker.DeleteResult, error)
}

// UserService defines the interface for user service operations
type UserService interface {
	UserStore
}
