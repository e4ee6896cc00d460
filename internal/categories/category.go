package categories

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

// Category groups exercises (e.g. Strength, Cardio, Sports).
// Default categories have no owner and are visible to everyone;
// custom ones belong to the user who created them.
type Category struct {
	ID       string `firestore:"-" json:"id"`
	Name     string `firestore:"name" json:"name"`
	Icon     string `firestore:"icon" json:"icon"`
	IsCustom bool   `firestore:"isCustom" json:"isCustom"`
	Owner    string `firestore:"owner" json:"owner"`
}
