package users

import (
	"context"

	"github.com/fitlog/fitlog/internal/tracker"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// CreateUser validates the request and creates a new user
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.Username == "" {
		return nil, tracker.NewValidationError("username", req.Username, "username is required")
	}
	return s.store.CreateUser(ctx, req)
}

// ListUsers returns all users
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// GetUser looks up a user by id
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, tracker.NewValidationError("_id", id, "user id is required")
	}
	return s.store.GetUser(ctx, id)
}

// DeleteAllUsers removes every user
func (s *UserServiceImpl) DeleteAllUsers(ctx context.Context) (*tracker.DeleteResult, error) {
	return s.store.DeleteAllUsers(ctx)
}
