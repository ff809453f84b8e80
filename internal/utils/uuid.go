package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string for users, sessions, matches
// and trace ids. A random UUIDv4 is used if the clock source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
