// Package uuid hides ID generation behind an interface so battle IDs
// can be pinned in tests.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces unique identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator issues random v4 UUIDs
type GoogleUUIDGenerator struct{}

// New returns a fresh UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
