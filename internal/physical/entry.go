package physical

import "time"

// Entry holds one day of body measurements. One entry per user per
// day, keyed by date, last write wins.
type Entry struct {
	Date       time.Time `firestore:"date" json:"date"`
	Weight     float64   `firestore:"weight" json:"weight"`
	BodyFat    float64   `firestore:"body_fat" json:"body_fat"`
	BodyMuscle float64   `firestore:"body_muscle" json:"body_muscle"`
}

func (e Entry) DocID() string {
	return e.Date.Format("2006-01-02")
}
