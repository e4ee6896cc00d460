package challenges

import "errors"

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrUnknownDomain     = errors.New("unknown challenge domain")
)

// Domain separates the two challenge families a user has: ones judged
// on body measurements and ones judged on workout history.
type Domain string

const (
	DomainPhysical Domain = "physical"
	DomainWorkouts Domain = "workouts"
)

func (d Domain) Valid() bool {
	return d == DomainPhysical || d == DomainWorkouts
}

func (d Domain) Subcollection() string {
	switch d {
	case DomainPhysical:
		return "user_physical_challenges"
	case DomainWorkouts:
		return "user_workouts_challenges"
	default:
		return ""
	}
}

// Challenge is one unlockable achievement. State flips to true exactly
// once, when the criteria are first met, and never back.
type Challenge struct {
	ID    string `firestore:"-" json:"id"`
	Name  string `firestore:"challenge" json:"challenge"`
	State bool   `firestore:"state" json:"state"`
}
