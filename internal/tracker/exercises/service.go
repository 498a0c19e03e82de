package exercises

import (
	"context"
	"strconv"
	"time"

	"github.com/fitlog/fitlog/internal/tracker"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// epochDate is the lower bound used when a log query carries no "from"
const epochDate = "1970-01-01"

// ExerciseServiceImpl implements the ExerciseService interface
type ExerciseServiceImpl struct {
	store ExerciseStore
	now   func() time.Time
}

// NewExerciseService creates a new exercise service instance
func NewExerciseService(store ExerciseStore) *ExerciseServiceImpl {
	return NewExerciseServiceWithClock(store, time.Now)
}

// NewExerciseServiceWithClock creates an exercise service with an injected
// clock. "Today" is computed per call from the clock, never captured once at
// construction.
func NewExerciseServiceWithClock(store ExerciseStore, now func() time.Time) *ExerciseServiceImpl {
	return &ExerciseServiceImpl{
		store: store,
		now:   now,
	}
}

// CreateExercise validates the request and logs an exercise for the given
// user. The caller resolves the user beforehand; a user deleted between that
// lookup and the insert still gets the exercise row (accepted race, there is
// no foreign key).
func (s *ExerciseServiceImpl) CreateExercise(ctx context.Context, user *users.User, req *CreateExerciseRequest) (*Exercise, error) {
	if user == nil {
		return nil, tracker.NewValidationError("user", nil, "user is required")
	}
	if req.Description == "" {
		return nil, tracker.NewValidationError("description", req.Description, "description is required")
	}

	duration, err := parseDuration(req.Duration.String())
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = s.now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, tracker.NewValidationErrorWithCause("date", date, "date must be YYYY-MM-DD", err)
	}

	exercise := &Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: req.Description,
		Duration:    duration,
		Date:        date,
	}

	return s.store.CreateExercise(ctx, exercise)
}

// QueryLog resolves range defaults and fetches the user's exercises. From
// defaults to the epoch, To defaults to today.
func (s *ExerciseServiceImpl) QueryLog(ctx context.Context, userID string, req *LogQueryRequest) ([]Exercise, error) {
	if userID == "" {
		return nil, tracker.NewValidationError("_id", userID, "user id is required")
	}

	from := req.From
	if from == "" {
		from = epochDate
	} else if _, err := time.Parse(DateLayout, from); err != nil {
		return nil, tracker.NewValidationErrorWithCause("from", from, "from must be YYYY-MM-DD", err)
	}

	to := req.To
	if to == "" {
		to = s.now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, to); err != nil {
		return nil, tracker.NewValidationErrorWithCause("to", to, "to must be YYYY-MM-DD", err)
	}

	if req.Limit < 0 {
		return nil, tracker.NewValidationError("limit", req.Limit, "limit cannot be negative")
	}

	query := &LogQuery{
		From:  from,
		To:    to,
		Limit: req.Limit,
	}

	return s.store.QueryLog(ctx, userID, query)
}

// DeleteAllExercises removes every exercise
func (s *ExerciseServiceImpl) DeleteAllExercises(ctx context.Context) (*tracker.DeleteResult, error) {
	return s.store.DeleteAllExercises(ctx)
}

// parseDuration rejects anything that is not a plain integer. The historic
// behavior of coercing bad input to a not-a-number sentinel is gone.
func parseDuration(raw string) (int, error) {
	if raw == "" {
		return 0, tracker.NewValidationError("duration", raw, "duration is required")
	}
	duration, err := strconv.Atoi(raw)
	if err != nil {
		return 0, tracker.NewValidationErrorWithCause("duration", raw, "duration must be an integer number of minutes", err)
	}
	return duration, nil
}
