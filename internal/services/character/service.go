package character

import (
	"context"
	"strings"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
	"github.com/KirkDiggler/quest-chronicles/internal/repositories/characters"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// ExperiencePerLevel is the multiplier for the level-up threshold:
// a character levels when experience reaches level * ExperiencePerLevel
const ExperiencePerLevel = 100

// Service defines the character service interface
type Service interface {
	// CreateCharacter creates and persists a new character
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error)

	// GetCharacter retrieves a character by name
	GetCharacter(ctx context.Context, name string) (*entities.Character, error)

	// ListCharacters lists all saved characters
	ListCharacters(ctx context.Context) ([]*entities.Character, error)

	// SaveCharacter persists the current state of a character
	SaveCharacter(ctx context.Context, character *entities.Character) error

	// DeleteCharacter removes a saved character
	DeleteCharacter(ctx context.Context, name string) error

	// GainExperience awards experience, applying level-up rollover.
	// Returns the number of levels gained.
	GainExperience(character *entities.Character, amount int) (int, error)

	// AddGold adjusts the gold balance; delta may be negative
	AddGold(character *entities.Character, delta int) error

	// HealCharacter heals up to amount, returning the actual amount healed
	HealCharacter(character *entities.Character, amount int) int

	// ReviveCharacter revives a dead character for a gold cost.
	// Reviving a living character is a no-op returning false.
	ReviveCharacter(character *entities.Character, goldCost int) (bool, error)
}

// CreateCharacterInput contains all data needed to create a character
type CreateCharacterInput struct {
	Name  string
	Class entities.Class
}

// service implements the Service interface
type service struct {
	repository Repository
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository // Required
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	return &service{
		repository: cfg.Repository,
	}
}

// CreateCharacter creates and persists a new character
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error) {
	if input == nil {
		return nil, qcerr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, qcerr.InvalidArgument("character name is required")
	}

	character, err := entities.NewCharacter(strings.TrimSpace(input.Name), input.Class)
	if err != nil {
		return nil, err
	}

	if err := s.repository.Create(ctx, character); err != nil {
		return nil, qcerr.Wrapf(err, "failed to create character '%s'", character.Name)
	}

	return character, nil
}

// GetCharacter retrieves a character by name
func (s *service) GetCharacter(ctx context.Context, name string) (*entities.Character, error) {
	if strings.TrimSpace(name) == "" {
		return nil, qcerr.InvalidArgument("character name is required")
	}

	character, err := s.repository.Get(ctx, name)
	if err != nil {
		return nil, qcerr.Wrapf(err, "failed to get character '%s'", name)
	}

	return character, nil
}

// ListCharacters lists all saved characters
func (s *service) ListCharacters(ctx context.Context) ([]*entities.Character, error) {
	characters, err := s.repository.List(ctx)
	if err != nil {
		return nil, qcerr.Wrap(err, "failed to list characters")
	}

	return characters, nil
}

// SaveCharacter persists the current state of a character
func (s *service) SaveCharacter(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}

	if err := s.repository.Update(ctx, character); err != nil {
		return qcerr.Wrapf(err, "failed to save character '%s'", character.Name)
	}

	return nil
}

// DeleteCharacter removes a saved character
func (s *service) DeleteCharacter(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	if err := s.repository.Delete(ctx, name); err != nil {
		return qcerr.Wrapf(err, "failed to delete character '%s'", name)
	}

	return nil
}

// GainExperience awards experience and applies level-up rollover.
// The threshold is recomputed from the new level after each level-up,
// so one large award can grant several levels. Every level-up raises
// max health by 10, strength and magic by 2, and fully restores health.
func (s *service) GainExperience(character *entities.Character, amount int) (int, error) {
	if character == nil {
		return 0, qcerr.InvalidArgument("character cannot be nil")
	}
	if amount < 0 {
		return 0, qcerr.InvalidArgument("experience amount cannot be negative")
	}
	if character.IsDead() {
		return 0, qcerr.CharacterDeadf("character '%s' is dead and cannot gain experience", character.Name).
			WithMeta("character_name", character.Name)
	}

	character.Experience += amount

	levelsGained := 0
	for character.Experience >= character.Level*ExperiencePerLevel {
		character.Experience -= character.Level * ExperiencePerLevel
		character.Level++
		character.MaxHealth += 10
		character.Strength += 2
		character.Magic += 2
		character.Health = character.MaxHealth
		levelsGained++
	}

	return levelsGained, nil
}

// AddGold adjusts the gold balance. The operation fails without
// mutating when the result would be negative.
func (s *service) AddGold(character *entities.Character, delta int) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}

	if character.Gold+delta < 0 {
		return qcerr.Newf(qcerr.CodeNegativeGold, "gold cannot go below zero (have %d, delta %d)", character.Gold, delta).
			WithMeta("gold", character.Gold).
			WithMeta("delta", delta)
	}

	character.Gold += delta
	return nil
}

// HealCharacter heals up to amount, capped at max health
func (s *service) HealCharacter(character *entities.Character, amount int) int {
	if character == nil {
		return 0
	}
	return character.Heal(amount)
}

// ReviveCharacter revives a dead character at half max health for a
// gold cost. Reviving a living character is a no-op returning false.
func (s *service) ReviveCharacter(character *entities.Character, goldCost int) (bool, error) {
	if character == nil {
		return false, qcerr.InvalidArgument("character cannot be nil")
	}
	if !character.IsDead() {
		return false, nil
	}
	if goldCost < 0 {
		return false, qcerr.InvalidArgument("revive cost cannot be negative")
	}

	if character.Gold < goldCost {
		return false, qcerr.InsufficientResourcesf("need %d gold to revive, have %d", goldCost, character.Gold).
			WithMeta("gold", character.Gold).
			WithMeta("cost", goldCost)
	}

	character.Gold -= goldCost
	character.Health = character.MaxHealth / 2
	return true, nil
}
