package characters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*entities.Character
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[string]*entities.Character),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.Name]; exists {
		return qcerr.AlreadyExistsf("character '%s' already exists", character.Name).
			WithMeta("character_name", character.Name)
	}

	// Store a copy to avoid external modifications
	r.characters[character.Name] = character.Clone()

	return nil
}

// Get retrieves a character by name
func (r *InMemoryRepository) Get(ctx context.Context, name string) (*entities.Character, error) {
	if name == "" {
		return nil, qcerr.InvalidArgument("character name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	character, exists := r.characters[name]
	if !exists {
		return nil, qcerr.NotFoundf("character '%s' not found", name).
			WithMeta("character_name", name)
	}

	return character.Clone(), nil
}

// List retrieves all saved characters
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.Character
	for _, character := range r.characters {
		result = append(result, character.Clone())
	}

	return result, nil
}

// Update overwrites an existing character
func (r *InMemoryRepository) Update(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.Name]; !exists {
		return qcerr.NotFoundf("character '%s' not found", character.Name).
			WithMeta("character_name", character.Name)
	}

	r.characters[character.Name] = character.Clone()

	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, name string) error {
	if name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[name]; !exists {
		return qcerr.NotFoundf("character '%s' not found", name).
			WithMeta("character_name", name)
	}

	delete(r.characters, name)
	return nil
}
