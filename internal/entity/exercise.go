package entity

import (
	"strconv"
	"strings"
	"time"
)

// User is an exercise tracker user.
type User struct {
	ID       string   // ID is the opaque user identifier.
	Username string   // Username is the non-empty display name.
	Log      []string // Log holds the ids of the user's exercises in creation order.
}

// Exercise is a single logged exercise. It is immutable once created.
type Exercise struct {
	ID          string    // ID is the opaque exercise identifier.
	UserID      string    // UserID references the owning user.
	Description string    // Description is the non-empty exercise description.
	Duration    int       // Duration is the exercise length in minutes.
	Date        time.Time // Date is the calendar date the exercise took place on.
}

// ExerciseInput is the raw input of a new exercise.
type ExerciseInput struct {
	Description string
	Duration    string
	Date        string
}

// ExerciseEntry is a created exercise together with its owner.
type ExerciseEntry struct {
	User     *User
	Exercise *Exercise
}

// ExerciseLog is the filtered, capped view of a user's exercises.
type ExerciseLog struct {
	User  *User
	Count int
	Log   []*Exercise
}

// LogQuery is the raw input of a log query. Every field is optional.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// LogFilter selects and caps the entries of a user's log.
//
// A date bound is only used if it is a valid calendar date. When neither bound
// is valid no date filtering is applied at all. A zero Limit means no cap.
type LogFilter struct {
	From  time.Time
	To    time.Time
	Limit int

	hasFrom bool
	hasTo   bool
}

// NewLogFilter builds a LogFilter from raw query values.
func NewLogFilter(q LogQuery) LogFilter {
	var f LogFilter

	f.From, f.hasFrom = ParseDate(q.From)
	f.To, f.hasTo = ParseDate(q.To)

	if n, err := strconv.Atoi(strings.TrimSpace(q.Limit)); err == nil && n > 0 {
		f.Limit = n
	}

	return f
}

// Dated reports whether the filter restricts dates.
func (f LogFilter) Dated() bool {
	return f.hasFrom || f.hasTo
}

// Match reports whether an exercise dated d passes the inclusive date bounds.
func (f LogFilter) Match(d time.Time) bool {
	d = DateOf(d)

	if f.hasFrom && d.Before(f.From) {
		return false
	}
	if f.hasTo && d.After(f.To) {
		return false
	}

	return true
}

// Apply keeps the exercises that pass the filter, in their given order,
// and caps the result.
func (f LogFilter) Apply(exercises []*Exercise) []*Exercise {
	out := make([]*Exercise, 0, len(exercises))

	for _, e := range exercises {
		if f.Dated() && !f.Match(e.Date) {
			continue
		}

		out = append(out, e)

		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}

	return out
}

// ParseDuration coerces raw exercise duration input to whole minutes.
// Values outside the 32-bit range are rejected as they cannot be stored.
func ParseDuration(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, ErrInvalidDuration
	}
	return int(n), nil
}
