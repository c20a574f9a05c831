package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The email address doubles as the user's
// ledger identity: group member lists and expense splits key on it, and it
// never changes after registration.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's unique, immutable ledger identity.
	Email string

	// DisplayName is the name shown to other group members.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
