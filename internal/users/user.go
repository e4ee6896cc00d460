package users

import "errors"

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID       string  `firestore:"-" json:"id"`
	Email    string  `firestore:"email" json:"email"`
	FullName string  `firestore:"fullName" json:"fullName"`
	Gender   string  `firestore:"gender" json:"gender"`
	Weight   float64 `firestore:"weight" json:"weight"`
	Height   float64 `firestore:"height" json:"height"`
	Birthday string  `firestore:"birthday" json:"birthday"`
}
