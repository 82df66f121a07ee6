package characters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

func newTestCharacter(t *testing.T) *entities.Character {
	t.Helper()
	character, err := entities.NewCharacter("Hero", entities.ClassWarrior)
	require.NoError(t, err)
	return character
}

func TestFileRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir())
	character := newTestCharacter(t)
	character.Inventory = []string{"iron_sword", "health_potion"}
	character.ActiveQuests = []string{"slay_goblin"}
	character.EquippedArmor = "leather_armor"

	require.NoError(t, repo.Create(ctx, character))

	loaded, err := repo.Get(ctx, "Hero")
	require.NoError(t, err)
	assert.Equal(t, character, loaded)
}

func TestFileRepository_SaveFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	character := newTestCharacter(t)

	require.NoError(t, repo.Create(ctx, character))

	content, err := os.ReadFile(filepath.Join(dir, "Hero_save.txt"))
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "NAME: Hero\n")
	assert.Contains(t, text, "CLASS: Warrior\n")
	assert.Contains(t, text, "MAX_HEALTH: 120\n")
	assert.Contains(t, text, "INVENTORY: \n", "empty lists serialize as empty values")
	assert.Contains(t, text, "EQUIPPED_WEAPON: \n")
}

func TestFileRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir())
	character := newTestCharacter(t)

	require.NoError(t, repo.Create(ctx, character))

	err := repo.Create(ctx, character)
	require.Error(t, err)
	assert.True(t, qcerr.IsAlreadyExists(err))
}

func TestFileRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir())

	_, err := repo.Get(ctx, "Nobody")
	require.Error(t, err)
	assert.True(t, qcerr.IsNotFound(err))
}

func TestFileRepository_CorruptedSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken_save.txt"), []byte("this is not a save file"), 0o644))

	_, err := repo.Get(ctx, "Broken")
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeDataFormat, qcerr.GetCode(err))
}

func TestFileRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewFileRepository(t.TempDir())
	character := newTestCharacter(t)

	err := repo.Update(ctx, character)
	require.Error(t, err, "update requires an existing save")
	assert.True(t, qcerr.IsNotFound(err))

	require.NoError(t, repo.Create(ctx, character))

	character.Gold = 500
	require.NoError(t, repo.Update(ctx, character))

	loaded, err := repo.Get(ctx, "Hero")
	require.NoError(t, err)
	assert.Equal(t, 500, loaded.Gold)

	require.NoError(t, repo.Delete(ctx, "Hero"))
	err = repo.Delete(ctx, "Hero")
	require.Error(t, err)
	assert.True(t, qcerr.IsNotFound(err))
}

func TestFileRepository_List(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileRepository(dir)

	// Empty directory (not yet created) lists nothing
	characters, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, characters)

	hero := newTestCharacter(t)
	require.NoError(t, repo.Create(ctx, hero))

	mage, err := entities.NewCharacter("Sage", entities.ClassMage)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, mage))

	// Unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	characters, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, characters, 2)
}
