package trainings

import "errors"

var ErrTrainingNotFound = errors.New("training not found")

// Training is a user defined plan referencing a set of exercises. The
// calories per hour mean is stored denormalized and refreshed whenever
// one of the referenced exercises changes its burn rate.
type Training struct {
	ID                  string   `firestore:"-" json:"id"`
	Owner               string   `firestore:"owner" json:"owner"`
	Name                string   `firestore:"name" json:"name"`
	Exercises           []string `firestore:"exercises" json:"exercises"`
	CaloriesPerHourMean int      `firestore:"calories_per_hour_mean" json:"calories_per_hour_mean"`
}

func (t Training) References(exerciseID string) bool {
	for _, id := range t.Exercises {
		if id == exerciseID {
			return true
		}
	}
	return false
}
