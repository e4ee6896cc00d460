package water

import "time"

// Intake is the accumulated water quantity for one day, in
// milliliters. Repeated submissions for the same day add up.
type Intake struct {
	Date     time.Time `firestore:"date" json:"date"`
	Quantity int       `firestore:"quantity" json:"quantity"`
}

func (i Intake) DocID() string {
	return i.Date.Format("2006-01-02")
}
