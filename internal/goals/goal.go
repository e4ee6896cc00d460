package goals

import (
	"errors"
	"time"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrStartInPast    = errors.New("goal start date is in the past")
	ErrEndBeforeStart = errors.New("goal end date is before its start")
)

// Goals without an explicit time of day start at ten in the morning.
const defaultGoalHour = 10

type Goal struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description" json:"description"`
	StartDate   time.Time `firestore:"start_date" json:"start_date"`
	EndDate     time.Time `firestore:"end_date" json:"end_date"`
	Completed   bool      `firestore:"completed" json:"completed"`
}

// ValidateDates checks the goal's time window against the current
// moment. Start dates before yesterday are rejected, today is fine.
func (g Goal) ValidateDates(now time.Time) error {
	yesterday := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	if g.StartDate.Before(yesterday) {
		return ErrStartInPast
	}
	if g.EndDate.Before(g.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}
