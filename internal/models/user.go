package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	// Used for login and insight emails.
	Email string

	// AvatarURL is an optional profile picture reference.
	AvatarURL string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and timestamps.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Snapshot returns the denormalized profile fields stored on records.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{Name: u.Name, Email: u.Email}
}

// Profile returns the public profile of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}

// UserSnapshot is a copy of a user's profile fields taken when a record was
// written. It is not kept in sync with the user.
type UserSnapshot struct {
	Name  string
	Email string
}

// Profile is the public view of a user.
type Profile struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}
