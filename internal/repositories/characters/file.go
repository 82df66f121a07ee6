package characters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

const saveFileSuffix = "_save.txt"

// fileRepo implements Repository using one KEY: VALUE text file per
// character, the game's native save format
type fileRepo struct {
	dir string
}

// NewFileRepository creates a file-backed character repository rooted
// at dir. The directory is created on first write.
func NewFileRepository(dir string) Repository {
	return &fileRepo{dir: dir}
}

func (r *fileRepo) path(name string) string {
	return filepath.Join(r.dir, name+saveFileSuffix)
}

// Create stores a new character
func (r *fileRepo) Create(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	if _, err := os.Stat(r.path(character.Name)); err == nil {
		return qcerr.AlreadyExistsf("character '%s' already exists", character.Name).
			WithMeta("character_name", character.Name)
	}

	return r.write(character)
}

// Get retrieves a character by name
func (r *fileRepo) Get(ctx context.Context, name string) (*entities.Character, error) {
	if name == "" {
		return nil, qcerr.InvalidArgument("character name is required")
	}

	content, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, qcerr.NotFoundf("character '%s' not found", name).
				WithMeta("character_name", name)
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	character, err := decodeSave(string(content))
	if err != nil {
		return nil, qcerr.Wrapf(err, "save file for '%s' is invalid", name)
	}
	return character, nil
}

// List retrieves all saved characters
func (r *fileRepo) List(ctx context.Context) ([]*entities.Character, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	var characters []*entities.Character
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveFileSuffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), saveFileSuffix)
		character, err := r.Get(ctx, name)
		if err != nil {
			// Skip saves that can't be loaded
			continue
		}
		characters = append(characters, character)
	}

	return characters, nil
}

// Update overwrites an existing character
func (r *fileRepo) Update(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return qcerr.InvalidArgument("character cannot be nil")
	}
	if character.Name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	if _, err := os.Stat(r.path(character.Name)); err != nil {
		if os.IsNotExist(err) {
			return qcerr.NotFoundf("character '%s' not found", character.Name).
				WithMeta("character_name", character.Name)
		}
		return fmt.Errorf("failed to stat save file: %w", err)
	}

	return r.write(character)
}

// Delete removes a character
func (r *fileRepo) Delete(ctx context.Context, name string) error {
	if name == "" {
		return qcerr.InvalidArgument("character name is required")
	}

	if err := os.Remove(r.path(name)); err != nil {
		if os.IsNotExist(err) {
			return qcerr.NotFoundf("character '%s' not found", name).
				WithMeta("character_name", name)
		}
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func (r *fileRepo) write(character *entities.Character) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	if err := os.WriteFile(r.path(character.Name), []byte(encodeSave(character)), 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// encodeSave renders a character in the KEY: VALUE save format
func encodeSave(c *entities.Character) string {
	var sb strings.Builder
	writeLine := func(key, value string) {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	writeLine("NAME", c.Name)
	writeLine("CLASS", string(c.Class))
	writeLine("LEVEL", strconv.Itoa(c.Level))
	writeLine("EXPERIENCE", strconv.Itoa(c.Experience))
	writeLine("HEALTH", strconv.Itoa(c.Health))
	writeLine("MAX_HEALTH", strconv.Itoa(c.MaxHealth))
	writeLine("STRENGTH", strconv.Itoa(c.Strength))
	writeLine("MAGIC", strconv.Itoa(c.Magic))
	writeLine("GOLD", strconv.Itoa(c.Gold))
	writeLine("INVENTORY", strings.Join(c.Inventory, ","))
	writeLine("ACTIVE_QUESTS", strings.Join(c.ActiveQuests, ","))
	writeLine("COMPLETED_QUESTS", strings.Join(c.CompletedQuests, ","))
	writeLine("EQUIPPED_WEAPON", c.EquippedWeapon)
	writeLine("EQUIPPED_ARMOR", c.EquippedArmor)

	return sb.String()
}

// decodeSave parses the KEY: VALUE save format back into a character
func decodeSave(content string) (*entities.Character, error) {
	fields := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, qcerr.DataFormatf("invalid save line '%s'", line)
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	required := []string{
		"NAME", "CLASS", "LEVEL", "EXPERIENCE", "HEALTH", "MAX_HEALTH",
		"STRENGTH", "MAGIC", "GOLD", "INVENTORY", "ACTIVE_QUESTS", "COMPLETED_QUESTS",
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return nil, qcerr.DataFormatf("save file missing field '%s'", key)
		}
	}

	intOf := func(key string) (int, error) {
		value, err := strconv.Atoi(fields[key])
		if err != nil {
			return 0, qcerr.DataFormatf("save field '%s' must be an integer, got '%s'", key, fields[key])
		}
		return value, nil
	}

	character := &entities.Character{
		Name:            fields["NAME"],
		Class:           entities.Class(fields["CLASS"]),
		Inventory:       splitList(fields["INVENTORY"]),
		ActiveQuests:    splitList(fields["ACTIVE_QUESTS"]),
		CompletedQuests: splitList(fields["COMPLETED_QUESTS"]),
		EquippedWeapon:  fields["EQUIPPED_WEAPON"],
		EquippedArmor:   fields["EQUIPPED_ARMOR"],
	}

	var err error
	if character.Level, err = intOf("LEVEL"); err != nil {
		return nil, err
	}
	if character.Experience, err = intOf("EXPERIENCE"); err != nil {
		return nil, err
	}
	if character.Health, err = intOf("HEALTH"); err != nil {
		return nil, err
	}
	if character.MaxHealth, err = intOf("MAX_HEALTH"); err != nil {
		return nil, err
	}
	if character.Strength, err = intOf("STRENGTH"); err != nil {
		return nil, err
	}
	if character.Magic, err = intOf("MAGIC"); err != nil {
		return nil, err
	}
	if character.Gold, err = intOf("GOLD"); err != nil {
		return nil, err
	}

	if !character.Class.IsValid() {
		return nil, qcerr.DataFormatf("save file has invalid class '%s'", character.Class)
	}

	return character, nil
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
