// Package models holds the records persisted by the board.
package models

// User is a registered account. The password is kept and compared in
// plaintext.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// NewUser builds a User with FullName derived from the name parts.
func NewUser(firstName, lastName, email, password string) User {
	return User{
		FirstName: firstName,
		LastName:  lastName,
		FullName:  firstName + " " + lastName,
		Email:     email,
		Password:  password,
	}
}
