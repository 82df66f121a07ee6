package characters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// characterIndexKey is the set of all saved character names
const characterIndexKey = "characters"

// Data represents the serialized form of a character in Redis
type Data struct {
	Name            string   `json:"name"`
	Class           string   `json:"class"`
	Level           int      `json:"level"`
	Experience      int      `json:"experience"`
	Health          int      `json:"health"`
	MaxHealth       int      `json:"max_health"`
	Strength        int      `json:"strength"`
	Magic           int      `json:"magic"`
	Gold            int      `json:"gold"`
	Inventory       []string `json:"inventory"`
	ActiveQuests    []string `json:"active_quests"`
	CompletedQuests []string `json:"completed_quests"`
	EquippedWeapon  string   `json:"equipped_weapon"`
	EquippedArmor   string   `json:"equipped_armor"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &redisRepo{client: client}
}

// key generates the Redis key for a character
func (r *redisRepo) key(name string) string {
	return fmt.Sprintf("character:%s", name)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	exists, err := r.client.Exists(ctx, r.key(character.Name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return qcerr.AlreadyExistsf("character '%s' already exists", character.Name).
			WithMeta("character_name", character.Name)
	}

	return r.set(ctx, character)
}

// Get retrieves a character by name
func (r *redisRepo) Get(ctx context.Context, name string) (*entities.Character, error) {
	if name == "" {
		return nil, qcerr.InvalidArgument("character name is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(name)).Result()
	if err == redis.Nil {
		return nil, qcerr.NotFoundf("character '%s' not found", name).
			WithMeta("character_name", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data Data
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}

	return fromData(&data), nil
}

// List retrieves all saved characters
func (r *redisRepo) List(ctx context.Context) ([]*entities.Character, error) {
	names, err := r.client.SMembers(ctx, characterIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character names: %w", err)
	}

	characters := make([]*entities.Character, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			character, err := r.Get(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", name, err)
			}
			characters[i] = character
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return characters, nil
}

// Update overwrites an existing character
func (r *redisRepo) Update(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	exists, err := r.client.Exists(ctx, r.key(character.Name)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists == 0 {
		return qcerr.NotFoundf("character '%s' not found", character.Name).
			WithMeta("character_name", character.Name)
	}

	return r.set(ctx, character)
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, name string) error {
	if name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	deleted, err := r.client.Del(ctx, r.key(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if deleted == 0 {
		return qcerr.NotFoundf("character '%s' not found", name).
			WithMeta("character_name", name)
	}

	if err := r.client.SRem(ctx, characterIndexKey, name).Err(); err != nil {
		return fmt.Errorf("failed to remove character from index: %w", err)
	}
	return nil
}

func (r *redisRepo) set(ctx context.Context, character *entities.Character) error {
	jsonData, err := json.Marshal(toData(character))
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, r.key(character.Name), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to store character: %w", err)
	}
	if err := r.client.SAdd(ctx, characterIndexKey, character.Name).Err(); err != nil {
		return fmt.Errorf("failed to index character: %w", err)
	}
	return nil
}

func toData(c *entities.Character) *Data {
	return &Data{
		Name:            c.Name,
		Class:           string(c.Class),
		Level:           c.Level,
		Experience:      c.Experience,
		Health:          c.Health,
		MaxHealth:       c.MaxHealth,
		Strength:        c.Strength,
		Magic:           c.Magic,
		Gold:            c.Gold,
		Inventory:       c.Inventory,
		ActiveQuests:    c.ActiveQuests,
		CompletedQuests: c.CompletedQuests,
		EquippedWeapon:  c.EquippedWeapon,
		EquippedArmor:   c.EquippedArmor,
	}
}

func fromData(d *Data) *entities.Character {
	character := &entities.Character{
		Name:            d.Name,
		Class:           entities.Class(d.Class),
		Level:           d.Level,
		Experience:      d.Experience,
		Health:          d.Health,
		MaxHealth:       d.MaxHealth,
		Strength:        d.Strength,
		Magic:           d.Magic,
		Gold:            d.Gold,
		Inventory:       d.Inventory,
		ActiveQuests:    d.ActiveQuests,
		CompletedQuests: d.CompletedQuests,
		EquippedWeapon:  d.EquippedWeapon,
		EquippedArmor:   d.EquippedArmor,
	}
	if character.Inventory == nil {
		character.Inventory = []string{}
	}
	if character.ActiveQuests == nil {
		character.ActiveQuests = []string{}
	}
	if character.CompletedQuests == nil {
		character.CompletedQuests = []string{}
	}
	return character
}
