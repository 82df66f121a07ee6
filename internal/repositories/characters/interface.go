package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
)

// Repository defines the interface for character persistence.
// Characters are keyed by name; the game runs one local player at a
// time, so names double as save identifiers.
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, character *entities.Character) error

	// Get retrieves a character by name
	Get(ctx context.Context, name string) (*entities.Character, error)

	// List retrieves all saved characters
	List(ctx context.Context) ([]*entities.Character, error)

	// Update overwrites an existing character
	Update(ctx context.Context, character *entities.Character) error

	// Delete removes a character
	Delete(ctx context.Context, name string) error
}
