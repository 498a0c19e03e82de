package exercises

import (
	"encoding/json"
	"time"
)

// DateLayout is the storage form of exercise dates. Plain string comparison
// on this layout is equivalent to chronological comparison, which is what the
// range queries rely on.
const DateLayout = "2006-01-02"

// Exercise represents a logged exercise bound to a user. Username is a
// denormalized copy of the owning user's name at creation time.
type Exercise struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"-"`
}

// CreateExerciseRequest represents the request to log an exercise. Duration
// is a json.Number so that numeric JSON bodies and url-encoded forms both
// bind; it is parsed and rejected explicitly, never coerced.
type CreateExerciseRequest struct {
	Description string      `json:"description" form:"description"`
	Duration    json.Number `json:"duration" form:"duration"`
	Date        string      `json:"date" form:"date"`
}

// LogQueryRequest carries the query parameters of a log request. From and To
// bound the inclusive date range, Limit caps the number of rows (0 means
// unlimited).
type LogQueryRequest struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit int    `form:"limit"`
}

// LogQuery is a LogQueryRequest with defaults resolved, ready for the store.
type LogQuery struct {
	From  string
	To    string
	Limit int
}
