package models

import "github.com/google/uuid"

// newID returns the identifier the store assigns to a new document.
func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}
