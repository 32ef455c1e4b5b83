package models

import "time"

// User represents an account entity used for authentication and as the owner
// of tasks. Credential-related data is never serialized.
type User struct {
	// UserID is the unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user. Always stored trimmed.
	Name string `json:"name"`

	// Email is the unique, lowercased e-mail address used to log in.
	Email string `json:"email"`

	// PasswordHash stores the encoded Argon2id digest of the user's password.
	// It is never the plaintext and never leaves the server.
	PasswordHash string `json:"-"`

	// Avatar holds the normalized PNG avatar. Nil when the user has none.
	Avatar []byte `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last profile change.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of a user record.
// Only non-nil fields are written.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update carries no changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.PasswordHash == nil
}

// AuthResponse is returned by sign up and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SignUpRequest carries the fields a client submits to create an account.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials carries the fields a client submits to log in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
