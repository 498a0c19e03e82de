package exercises

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlog/fitlog/internal/tracker"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// fakeExerciseStore is an in-memory ExerciseStore for service tests
type fakeExerciseStore struct {
	exercises []Exercise
}

func (f *fakeExerciseStore) CreateExercise(ctx context.Context, exercise *Exercise) (*Exercise, error) {
	stored := *exercise
	stored.ID = uuid.NewString()
	f.exercises = append(f.exercises, stored)
	return &stored, nil
}

func (f *fakeExerciseStore) QueryLog(ctx context.Context, userID string, query *LogQuery) ([]Exercise, error) {
	var result []Exercise
	for _, ex := range f.exercises {
		if ex.UserID != userID {
			continue
		}
		if ex.Date < query.From || ex.Date > query.To {
			continue
		}
		result = append(result, Exercise{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result, nil
}

func (f *fakeExerciseStore) DeleteAllExercises(ctx context.Context) (*tracker.DeleteResult, error) {
	deleted := int64(len(f.exercises))
	f.exercises = nil
	return &tracker.DeleteResult{DeletedCount: deleted}, nil
}

// fixedClock pins "now" so date defaults are deterministic
func fixedClock(date string) func() time.Time {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func testUser() *users.User {
	return &users.User{ID: uuid.NewString(), Username: "fcc_test"}
}

func TestCreateExerciseWithExplicitDate(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()

	exercise, err := service.CreateExercise(context.Background(), user, &CreateExerciseRequest{
		Description: "test run",
		Duration:    json.Number("30"),
		Date:        "2023-01-15",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, exercise.UserID)
	assert.Equal(t, "fcc_test", exercise.Username)
	assert.Equal(t, "test run", exercise.Description)
	assert.Equal(t, 30, exercise.Duration)
	assert.Equal(t, "2023-01-15", exercise.Date)
	assert.NotEmpty(t, exercise.ID)
}

func TestCreateExerciseDateDefaultsToToday(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))

	exercise, err := service.CreateExercise(context.Background(), testUser(), &CreateExerciseRequest{
		Description: "morning swim",
		Duration:    json.Number("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2023-06-01", exercise.Date)
}

func TestCreateExerciseDefaultDateFollowsTheClock(t *testing.T) {
	// The default date must be computed per call, not captured once
	current := "2023-06-01"
	clock := func() time.Time {
		t, _ := time.Parse(DateLayout, current)
		return t
	}
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, clock)
	ctx := context.Background()

	first, err := service.CreateExercise(ctx, testUser(), &CreateExerciseRequest{
		Description: "run", Duration: json.Number("10"),
	})
	require.NoError(t, err)

	current = "2023-06-02"
	second, err := service.CreateExercise(ctx, testUser(), &CreateExerciseRequest{
		Description: "run", Duration: json.Number("10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2023-06-01", first.Date)
	assert.Equal(t, "2023-06-02", second.Date)
}

func TestCreateExerciseValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateExerciseRequest
		field string
	}{
		{
			name:  "missing description",
			req:   CreateExerciseRequest{Duration: json.Number("30")},
			field: "description",
		},
		{
			name:  "missing duration",
			req:   CreateExerciseRequest{Description: "run"},
			field: "duration",
		},
		{
			name:  "non numeric duration is rejected not coerced",
			req:   CreateExerciseRequest{Description: "run", Duration: json.Number("half an hour")},
			field: "duration",
		},
		{
			name:  "fractional duration",
			req:   CreateExerciseRequest{Description: "run", Duration: json.Number("30.5")},
			field: "duration",
		},
		{
			name:  "malformed date",
			req:   CreateExerciseRequest{Description: "run", Duration: json.Number("30"), Date: "15/01/2023"},
			field: "date",
		},
	}

	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateExercise(context.Background(), testUser(), &tt.req)

			var validationErr *tracker.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCreateExerciseRequiresUser(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))

	_, err := service.CreateExercise(context.Background(), nil, &CreateExerciseRequest{
		Description: "run",
		Duration:    json.Number("30"),
	})

	var validationErr *tracker.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func seedLog(t *testing.T, service *ExerciseServiceImpl, user *users.User) {
	t.Helper()
	ctx := context.Background()
	for _, item := range []struct {
		description string
		date        string
	}{
		{"january run", "2023-01-15"},
		{"february walk", "2023-02-10"},
		{"march swim", "2023-03-05"},
	} {
		_, err := service.CreateExercise(ctx, user, &CreateExerciseRequest{
			Description: item.description,
			Duration:    json.Number("30"),
			Date:        item.date,
		})
		require.NoError(t, err)
	}
}

func TestQueryLogInclusiveRange(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()
	seedLog(t, service, user)

	// Bounds land exactly on the first and second entries
	items, err := service.QueryLog(context.Background(), user.ID, &LogQueryRequest{
		From: "2023-01-15",
		To:   "2023-02-10",
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "january run", items[0].Description)
	assert.Equal(t, "february walk", items[1].Description)
}

func TestQueryLogDefaultsCoverEverythingUpToToday(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()
	seedLog(t, service, user)

	items, err := service.QueryLog(context.Background(), user.ID, &LogQueryRequest{})
	require.NoError(t, err)

	assert.Len(t, items, 3)
}

func TestQueryLogLimit(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()
	seedLog(t, service, user)
	ctx := context.Background()

	limited, err := service.QueryLog(ctx, user.ID, &LogQueryRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	unlimited, err := service.QueryLog(ctx, user.ID, &LogQueryRequest{Limit: 0})
	require.NoError(t, err)
	assert.Len(t, unlimited, 3)
}

func TestQueryLogValidation(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()

	tests := []struct {
		name string
		req  LogQueryRequest
	}{
		{"malformed from", LogQueryRequest{From: "Jan 15 2023"}},
		{"malformed to", LogQueryRequest{To: "2023-13-45"}},
		{"negative limit", LogQueryRequest{Limit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.QueryLog(context.Background(), user.ID, &tt.req)

			var validationErr *tracker.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestQueryLogOtherUsersExcluded(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	alice := testUser()
	bob := testUser()
	seedLog(t, service, alice)

	items, err := service.QueryLog(context.Background(), bob.ID, &LogQueryRequest{})
	require.NoError(t, err)

	assert.Empty(t, items)
}

func TestDeleteAllExercisesReturnsCount(t *testing.T) {
	service := NewExerciseServiceWithClock(&fakeExerciseStore{}, fixedClock("2023-06-01"))
	user := testUser()
	seedLog(t, service, user)

	result, err := service.DeleteAllExercises(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.DeletedCount)
}
