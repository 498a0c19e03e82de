package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitlog/fitlog/internal/tracker"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UUID      uuid.UUID `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	Username  string    `bun:"username,notnull" json:"username"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// UserStoreImpl implements the UserStore interface
type UserStoreImpl struct {
	db *bun.DB
}

// NewUserStore creates a new user store instance
func NewUserStore(db *bun.DB) *UserStoreImpl {
	return &UserStoreImpl{
		db: db,
	}
}

// CreateUser inserts a new user with a generated id
func (s *UserStoreImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	schema := UserSchema{
		UUID:      uuid.New(),
		Username:  req.Username,
		CreatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, tracker.NewStorageError("insert", "users", err)
	}

	return userSchemaToUser(schema), nil
}

// ListUsers returns all users. Order is not guaranteed.
func (s *UserStoreImpl) ListUsers(ctx context.Context) ([]User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Scan(ctx)
	if err != nil {
		return nil, tracker.NewStorageError("select", "users", err)
	}

	result := make([]User, len(schemas))
	for i, schema := range schemas {
		result[i] = *userSchemaToUser(schema)
	}
	return result, nil
}

// GetUser looks up a user by its opaque id
func (s *UserStoreImpl) GetUser(ctx context.Context, id string) (*User, error) {
	userUUID, err := uuid.Parse(id)
	if err != nil {
		return nil, tracker.NewValidationErrorWithCause("_id", id, "malformed user id", err)
	}

	var schema UserSchema
	err = s.db.NewSelect().
		Model(&schema).
		Where("uuid = ?", userUUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tracker.NewNotFoundError("user", id)
		}
		return nil, tracker.NewStorageError("select", "users", err)
	}

	return userSchemaToUser(schema), nil
}

// DeleteAllUsers removes every user row. Exercises are left in place, there
// is no cascade.
func (s *UserStoreImpl) DeleteAllUsers(ctx context.Context) (*tracker.DeleteResult, error) {
	res, err := s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return nil, tracker.NewStorageError("delete", "users", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, tracker.NewStorageError("delete", "users", err)
	}

	return &tracker.DeleteResult{DeletedCount: deleted}, nil
}

func userSchemaToUser(schema UserSchema) *User {
	return &User{
		ID:        schema.UUID.String(),
		Username:  schema.Username,
		CreatedAt: schema.CreatedAt,
	}
}
