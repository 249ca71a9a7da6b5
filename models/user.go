package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the server.
type User struct {
	// UserID is a time-ordered UUID assigned at registration.
	UserID string `json:"user_id"`
	// Username is unique and stored trimmed.
	Username string `json:"username"`
	// Email is unique and stored trimmed and lower-cased.
	Email string `json:"email"`
	// Password carries the plaintext only between request decoding and
	// hashing; it is never persisted.
	Password string `json:"password,omitempty"`
	// PasswordHash is the bcrypt digest of the password.
	PasswordHash string `json:"-"`
	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
