package exercises

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fitlog/fitlog/internal/tracker"
)

// ExerciseSchema represents the exercises table schema in PostgreSQL.
// user_id is a plain column, not a foreign key: deleting a user leaves its
// exercises in place.
type ExerciseSchema struct {
	bun.BaseModel `bun:"table:exercises,alias:e"`

	UUID        uuid.UUID `bun:"uuid,pk,type:uuid,default:gen_random_uuid()" json:"uuid"`
	UserID      uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Username    string    `bun:"username,notnull" json:"username"`
	Description string    `bun:"description,notnull" json:"description"`
	Duration    int       `bun:"duration,notnull" json:"duration"`
	Date        string    `bun:"date,notnull,type:varchar(10)" json:"date"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Indexes holds the index DDL for the exercises table
var Indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_exercises_user_id_date ON exercises (user_id, date)",
}

// ExerciseStoreImpl implements the ExerciseStore interface
type ExerciseStoreImpl struct {
	db *bun.DB
}

// NewExerciseStore creates a new exercise store instance
func NewExerciseStore(db *bun.DB) *ExerciseStoreImpl {
	return &ExerciseStoreImpl{
		db: db,
	}
}

// CreateExercise inserts a new exercise row with a generated id
func (s *ExerciseStoreImpl) CreateExercise(ctx context.Context, exercise *Exercise) (*Exercise, error) {
	userUUID, err := uuid.Parse(exercise.UserID)
	if err != nil {
		return nil, tracker.NewValidationErrorWithCause("userId", exercise.UserID, "malformed user id", err)
	}

	schema := ExerciseSchema{
		UUID:        uuid.New(),
		UserID:      userUUID,
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		CreatedAt:   time.Now(),
	}

	_, err = s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, tracker.NewStorageError("insert", "exercises", err)
	}

	return exerciseSchemaToExercise(schema), nil
}

// QueryLog returns the user's exercises with date inside the inclusive
// [query.From, query.To] range, oldest first. Only description, duration and
// date are selected; a non-positive limit returns all matching rows.
func (s *ExerciseStoreImpl) QueryLog(ctx context.Context, userID string, query *LogQuery) ([]Exercise, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, tracker.NewValidationErrorWithCause("_id", userID, "malformed user id", err)
	}

	var schemas []ExerciseSchema
	q := s.db.NewSelect().
		Model(&schemas).
		Column("description", "duration", "date").
		Where("user_id = ?", userUUID).
		Where("date >= ?", query.From).
		Where("date <= ?", query.To).
		Order("date ASC")

	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, tracker.NewStorageError("select", "exercises", err)
	}

	result := make([]Exercise, len(schemas))
	for i, schema := range schemas {
		result[i] = Exercise{
			Description: schema.Description,
			Duration:    schema.Duration,
			Date:        schema.Date,
		}
	}
	return result, nil
}

// DeleteAllExercises removes every exercise row
func (s *ExerciseStoreImpl) DeleteAllExercises(ctx context.Context) (*tracker.DeleteResult, error) {
	res, err := s.db.NewDelete().
		Model((*ExerciseSchema)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return nil, tracker.NewStorageError("delete", "exercises", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, tracker.NewStorageError("delete", "exercises", err)
	}

	return &tracker.DeleteResult{DeletedCount: deleted}, nil
}

func exerciseSchemaToExercise(schema ExerciseSchema) *Exercise {
	return &Exercise{
		ID:          schema.UUID.String(),
		UserID:      schema.UserID.String(),
		Username:    schema.Username,
		Description: schema.Description,
		Duration:    schema.Duration,
		Date:        schema.Date,
		CreatedAt:   schema.CreatedAt,
	}
}
