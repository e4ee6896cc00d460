package workouts

import (
	"errors"
	"math"
	"time"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Workout is a single performed session of a training. The calories
// total is a snapshot taken at creation time from the training's mean
// at that moment. Later burn rate edits never rewrite it.
type Workout struct {
	ID            string    `firestore:"-" json:"id"`
	Owner         string    `firestore:"owner" json:"owner"`
	TrainingID    string    `firestore:"training_id" json:"training_id"`
	Duration      int       `firestore:"duration" json:"duration"`
	Date          time.Time `firestore:"date" json:"date"`
	Coach         string    `firestore:"coach" json:"coach"`
	TotalCalories int       `firestore:"total_calories" json:"total_calories"`
}

// TotalCalories converts an hourly burn rate into the calories burnt
// over the given duration in minutes.
func TotalCalories(caloriesPerHourMean, durationMinutes int) int {
	return int(math.Round(float64(caloriesPerHourMean) / 60 * float64(durationMinutes)))
}
