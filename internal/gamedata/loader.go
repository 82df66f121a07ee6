// Package gamedata loads and validates the item and quest catalogs.
// Catalogs are flat text resources: blocks of KEY: VALUE lines
// separated by blank lines. They are loaded once per session and are
// read-only afterwards.
package gamedata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KirkDiggler/quest-chronicles/internal/entities"
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

const (
	// ItemsFile is the catalog file name for items
	ItemsFile = "items.txt"

	// QuestsFile is the catalog file name for quests
	QuestsFile = "quests.txt"
)

// Catalog holds the loaded, immutable game definitions
type Catalog struct {
	Items  map[string]*entities.ItemDefinition
	Quests map[string]*entities.QuestDefinition
}

// LoadCatalog loads both catalogs from dataDir and validates them
func LoadCatalog(dataDir string) (*Catalog, error) {
	items, err := LoadItems(filepath.Join(dataDir, ItemsFile))
	if err != nil {
		return nil, err
	}

	quests, err := LoadQuests(filepath.Join(dataDir, QuestsFile))
	if err != nil {
		return nil, err
	}

	if err := ValidateQuests(quests); err != nil {
		return nil, err
	}

	return &Catalog{Items: items, Quests: quests}, nil
}

// LoadItems reads and validates the item catalog file
func LoadItems(path string) (map[string]*entities.ItemDefinition, error) {
	blocks, err := readBlocks(path)
	if err != nil {
		return nil, err
	}

	items := make(map[string]*entities.ItemDefinition, len(blocks))
	for _, block := range blocks {
		fields, err := parseBlock(block)
		if err != nil {
			return nil, err
		}

		item, err := itemFromFields(fields)
		if err != nil {
			return nil, err
		}

		if _, exists := items[item.ID]; exists {
			return nil, qcerr.DataFormatf("duplicate item ID '%s'", item.ID)
		}
		items[item.ID] = item
	}

	return items, nil
}

// LoadQuests reads and validates the quest catalog file. Prerequisite
// chains are checked for referential integrity and cycles at load time
// so traversals can never loop.
func LoadQuests(path string) (map[string]*entities.QuestDefinition, error) {
	blocks, err := readBlocks(path)
	if err != nil {
		return nil, err
	}

	quests := make(map[string]*entities.QuestDefinition, len(blocks))
	for _, block := range blocks {
		fields, err := parseBlock(block)
		if err != nil {
			return nil, err
		}

		quest, err := questFromFields(fields)
		if err != nil {
			return nil, err
		}

		if _, exists := quests[quest.ID]; exists {
			return nil, qcerr.DataFormatf("duplicate quest ID '%s'", quest.ID)
		}
		quests[quest.ID] = quest
	}

	if err := ValidateQuests(quests); err != nil {
		return nil, err
	}

	return quests, nil
}

// ValidateQuests checks that every prerequisite names a catalog member
// and that no prerequisite chain forms a cycle
func ValidateQuests(quests map[string]*entities.QuestDefinition) error {
	for id, quest := range quests {
		if !quest.HasPrerequisite() {
			continue
		}
		if _, ok := quests[quest.Prerequisite]; !ok {
			return qcerr.QuestNotFoundf("prerequisite '%s' for quest '%s' does not exist", quest.Prerequisite, id)
		}
	}

	// Walk each chain; a chain longer than the catalog must be cyclic
	for id := range quests {
		seen := map[string]bool{}
		current := id
		for {
			if seen[current] {
				return qcerr.DataFormatf("quest '%s' is part of a prerequisite cycle", current)
			}
			seen[current] = true

			quest := quests[current]
			if !quest.HasPrerequisite() {
				break
			}
			current = quest.Prerequisite
		}
	}

	return nil
}

// readBlocks reads a catalog file and splits it into blank-line
// separated blocks of lines
func readBlocks(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, qcerr.NotFoundf("data file '%s' not found", path)
		}
		return nil, qcerr.WrapWithCode(err, qcerr.CodeDataFormat, "data file is unreadable")
	}

	var blocks [][]string
	var current []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, trimmed)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks, nil
}

// parseBlock turns KEY: VALUE lines into a field map
func parseBlock(lines []string) (map[string]string, error) {
	fields := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, qcerr.DataFormatf("invalid line '%s': missing ':' separator", line)
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields, nil
}

func requireFields(fields map[string]string, required []string) error {
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return qcerr.DataFormatf("missing required field '%s'", key)
		}
	}
	return nil
}

func intField(fields map[string]string, key string) (int, error) {
	value, err := strconv.Atoi(fields[key])
	if err != nil {
		return 0, qcerr.DataFormatf("field '%s' must be an integer, got '%s'", key, fields[key])
	}
	return value, nil
}

func itemFromFields(fields map[string]string) (*entities.ItemDefinition, error) {
	required := []string{"ITEM_ID", "NAME", "TYPE", "EFFECT", "COST", "DESCRIPTION"}
	if err := requireFields(fields, required); err != nil {
		return nil, err
	}

	itemType := entities.ItemType(fields["TYPE"])
	if !itemType.IsValid() {
		return nil, qcerr.DataFormatf("item '%s' has invalid type '%s'", fields["ITEM_ID"], fields["TYPE"])
	}

	effect, err := entities.ParseEffect(fields["EFFECT"])
	if err != nil {
		return nil, qcerr.Wrapf(err, "item '%s' has a malformed effect", fields["ITEM_ID"])
	}

	cost, err := intField(fields, "COST")
	if err != nil {
		return nil, err
	}
	if cost < 0 {
		return nil, qcerr.DataFormatf("item '%s' has negative cost", fields["ITEM_ID"])
	}

	return &entities.ItemDefinition{
		ID:          fields["ITEM_ID"],
		Name:        fields["NAME"],
		Type:        itemType,
		Effect:      effect,
		Cost:        cost,
		Description: fields["DESCRIPTION"],
	}, nil
}

func questFromFields(fields map[string]string) (*entities.QuestDefinition, error) {
	required := []string{"QUEST_ID", "TITLE", "DESCRIPTION", "REWARD_XP", "REWARD_GOLD", "REQUIRED_LEVEL", "PREREQUISITE"}
	if err := requireFields(fields, required); err != nil {
		return nil, err
	}

	rewardXP, err := intField(fields, "REWARD_XP")
	if err != nil {
		return nil, err
	}
	rewardGold, err := intField(fields, "REWARD_GOLD")
	if err != nil {
		return nil, err
	}
	requiredLevel, err := intField(fields, "REQUIRED_LEVEL")
	if err != nil {
		return nil, err
	}

	if rewardXP < 0 || rewardGold < 0 {
		return nil, qcerr.DataFormatf("quest '%s' has negative rewards", fields["QUEST_ID"])
	}
	if requiredLevel < 1 {
		return nil, qcerr.DataFormatf("quest '%s' requires level below 1", fields["QUEST_ID"])
	}

	return &entities.QuestDefinition{
		ID:            fields["QUEST_ID"],
		Title:         fields["TITLE"],
		Description:   fields["DESCRIPTION"],
		RewardXP:      rewardXP,
		RewardGold:    rewardGold,
		RequiredLevel: requiredLevel,
		Prerequisite:  fields["PREREQUISITE"],
	}, nil
}
