package gamedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.txt", `ITEM_ID: iron_sword
NAME: Iron Sword
TYPE: weapon
EFFECT: strength:5
COST: 50
DESCRIPTION: Basic melee weapon.

ITEM_ID: health_potion
NAME: Health Potion
TYPE: consumable
EFFECT: health:20
COST: 25
DESCRIPTION: Restores health.
`)

	items, err := LoadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	sword := items["iron_sword"]
	require.NotNil(t, sword)
	assert.Equal(t, "Iron Sword", sword.Name)
	assert.Equal(t, entities.ItemTypeWeapon, sword.Type)
	assert.Equal(t, entities.StatStrength, sword.Effect.Stat)
	assert.Equal(t, 5, sword.Effect.Delta)
	assert.Equal(t, 50, sword.Cost)
}

func TestLoadItems_MissingFile(t *testing.T) {
	_, err := LoadItems(filepath.Join(t.TempDir(), "items.txt"))
	require.Error(t, err)
	assert.True(t, qcerr.IsNotFound(err))
}

func TestLoadItems_MalformedEffect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.txt", `ITEM_ID: cursed_ring
NAME: Cursed Ring
TYPE: armor
EFFECT: luck over nine thousand
COST: 10
DESCRIPTION: Probably fine.
`)

	_, err := LoadItems(path)
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeDataFormat, qcerr.GetCode(err))
}

func TestLoadItems_InvalidType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.txt", `ITEM_ID: shiny_rock
NAME: Shiny Rock
TYPE: trinket
EFFECT: gold:1
COST: 1
DESCRIPTION: It sparkles.
`)

	_, err := LoadItems(path)
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeDataFormat, qcerr.GetCode(err))
}

func TestLoadItems_MissingField(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.txt", `ITEM_ID: iron_sword
NAME: Iron Sword
TYPE: weapon
`)

	_, err := LoadItems(path)
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeDataFormat, qcerr.GetCode(err))
}

func TestLoadQuests(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quests.txt", `QUEST_ID: slay_goblin
TITLE: Slay the Goblin
DESCRIPTION: A goblin threatens the village.
REWARD_XP: 100
REWARD_GOLD: 50
REQUIRED_LEVEL: 1
PREREQUISITE: NONE

QUEST_ID: goblin_chief
TITLE: The Goblin Chief
DESCRIPTION: Find the chief.
REWARD_XP: 150
REWARD_GOLD: 75
REQUIRED_LEVEL: 2
PREREQUISITE: slay_goblin
`)

	quests, err := LoadQuests(path)
	require.NoError(t, err)
	require.Len(t, quests, 2)

	chief := quests["goblin_chief"]
	require.NotNil(t, chief)
	assert.Equal(t, "slay_goblin", chief.Prerequisite)
	assert.True(t, chief.HasPrerequisite())
	assert.False(t, quests["slay_goblin"].HasPrerequisite())
}

func TestLoadQuests_DanglingPrerequisite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quests.txt", `QUEST_ID: goblin_chief
TITLE: The Goblin Chief
DESCRIPTION: Find the chief.
REWARD_XP: 150
REWARD_GOLD: 75
REQUIRED_LEVEL: 2
PREREQUISITE: slay_goblin
`)

	_, err := LoadQuests(path)
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeQuestNotFound, qcerr.GetCode(err))
}

func TestValidateQuests_Cycle(t *testing.T) {
	quests := map[string]*entities.QuestDefinition{
		"a": {ID: "a", Prerequisite: "b", RequiredLevel: 1},
		"b": {ID: "b", Prerequisite: "a", RequiredLevel: 1},
	}

	err := ValidateQuests(quests)
	require.Error(t, err)
	assert.Equal(t, qcerr.CodeDataFormat, qcerr.GetCode(err))
}

func TestEnsureDefaultDataFiles(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	require.NoError(t, EnsureDefaultDataFiles(dataDir))

	catalog, err := LoadCatalog(dataDir)
	require.NoError(t, err)
	assert.NotEmpty(t, catalog.Items)
	assert.NotEmpty(t, catalog.Quests)

	// Existing files are not clobbered
	custom := writeFile(t, dataDir, ItemsFile, `ITEM_ID: custom
NAME: Custom
TYPE: weapon
EFFECT: strength:1
COST: 1
DESCRIPTION: Mine.
`)
	require.NoError(t, EnsureDefaultDataFiles(dataDir))
	content, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Contains(t, string(content), "custom")
}
