package model

import "github.com/google/uuid"

// NewID creates a new random identifier for sessions and journal entries.
func NewID() string {
	return uuid.New().String()
}
