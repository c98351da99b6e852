package domain

import "time"

// UserFields are the user supplied attributes of a profile. Insert and update
// both take the full set; there is no partial patch.
type UserFields struct {
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"` // unique across all users
	Age       int    `db:"age"`   // 13..120 inclusive
	Bio       string `db:"bio"`   // optional, may be empty
}

type User struct {
	ID int64 `db:"id"`
	UserFields
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
