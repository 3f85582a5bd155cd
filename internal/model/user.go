package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
)

// User is the durable identity record. Password holds the PHC-encoded
// hash, never plaintext, and never leaves the server (json:"-").
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Password  string     `json:"-"`
	Level     auth.Level `json:"level"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SecureUser is the wire representation of a user: identity and role
// only, no credential material.
type SecureUser struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Level auth.Level `json:"level"`
}

func (u User) Secure() SecureUser {
	return SecureUser{
		ID:    u.ID,
		Name:  u.Name,
		Level: u.Level,
	}
}
