package exercises

import (
	"context"

	"github.com/fitlog/fitlog/internal/tracker"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// ExerciseStore defines the interface for exercise storage operations
type ExerciseStore interface {
	CreateExercise(ctx context.Context, exercise *Exercise) (*Exercise, error)
	QueryLog(ctx context.Context, userID string, query *LogQuery) ([]Exercise, error)
	DeleteAllExercises(ctx context.Context) (*tracker.DeleteResult, error)
}

// ExerciseService defines the interface for exercise service operations
type ExerciseService interface {
	CreateExercise(ctx context.Context, user *users.User, req *CreateExerciseRequest) (*Exercise, error)
	QueryLog(ctx context.Context, userID string, req *LogQueryRequest) ([]Exercise, error)
	DeleteAllExercises(ctx context.Context) (*tracker.DeleteResult, error)
}
