package exercises

import "errors"

var ErrExerciseNotFound = errors.New("exercise not found")

// Calories burn rates outside this range are considered data entry mistakes.
const (
	MinCaloriesPerHour = 60
	MaxCaloriesPerHour = 4000
)

type Exercise struct {
	ID              string  `firestore:"-" json:"id"`
	Name            string  `firestore:"name" json:"name"`
	CaloriesPerHour float64 `firestore:"calories_per_hour" json:"calories_per_hour"`
	Public          bool    `firestore:"public" json:"public"`
	Owner           string  `firestore:"owner" json:"owner"`
	CategoryID      string  `firestore:"category_id" json:"category_id"`
	TrainingMuscle  string  `firestore:"training_muscle" json:"training_muscle"`
	ImageURL        string  `firestore:"image_url" json:"image_url"`
}

func ValidCaloriesPerHour(caloriesPerHour float64) bool {
	return caloriesPerHour > MinCaloriesPerHour && caloriesPerHour < MaxCaloriesPerHour
}
