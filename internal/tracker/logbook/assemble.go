// Package logbook shapes a user's filtered exercises into the log response.
package logbook

import (
	"time"

	"github.com/fitlog/fitlog/internal/tracker/exercises"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// Entry is one line of the log with the date rendered long-form
type Entry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// Log is the response shape of the logs endpoint. Count always equals
// len(Log).
type Log struct {
	ID       string  `json:"_id"`
	Username string  `json:"username"`
	Count    int     `json:"count"`
	Log      []Entry `json:"log"`
}

// Assemble builds the log response for a user. Pure: no side effects,
// deterministic for a given input. The log array is never nil so an empty
// log serializes as [].
func Assemble(user *users.User, items []exercises.Exercise) *Log {
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{
			Description: item.Description,
			Duration:    item.Duration,
			Date:        HumanDate(item.Date),
		}
	}

	return &Log{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}
}

// HumanDate renders a stored YYYY-MM-DD date as a locale-independent
// long-form string, e.g. "Sun Jan 15 2023". A date that does not parse is
// returned unchanged.
func HumanDate(date string) string {
	t, err := time.Parse(exercises.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 02 2006")
}
