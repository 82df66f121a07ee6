package gamedata

import (
	"os"
	"path/filepath"
)

const defaultItems = `ITEM_ID: iron_sword
NAME: Iron Sword
TYPE: weapon
EFFECT: strength:5
COST: 50
DESCRIPTION: Basic melee weapon.

ITEM_ID: steel_sword
NAME: Steel Sword
TYPE: weapon
EFFECT: strength:10
COST: 120
DESCRIPTION: A sharper, heavier blade.

ITEM_ID: oak_staff
NAME: Oak Staff
TYPE: weapon
EFFECT: magic:8
COST: 90
DESCRIPTION: A focus for spellcasters.

ITEM_ID: leather_armor
NAME: Leather Armor
TYPE: armor
EFFECT: max_health:15
COST: 60
DESCRIPTION: Light protection for travelers.

ITEM_ID: chain_mail
NAME: Chain Mail
TYPE: armor
EFFECT: max_health:30
COST: 150
DESCRIPTION: Heavy protection for the front line.

ITEM_ID: health_potion
NAME: Health Potion
TYPE: consumable
EFFECT: health:20
COST: 25
DESCRIPTION: Restores a modest amount of health.

ITEM_ID: strength_tonic
NAME: Strength Tonic
TYPE: consumable
EFFECT: strength:2
COST: 75
DESCRIPTION: Permanently toughens the drinker.
`

const defaultQuests = `QUEST_ID: slay_goblin
TITLE: Slay the Goblin
DESCRIPTION: A goblin threatens the village.
REWARD_XP: 100
REWARD_GOLD: 50
REQUIRED_LEVEL: 1
PREREQUISITE: NONE

QUEST_ID: goblin_chief
TITLE: The Goblin Chief
DESCRIPTION: Track the goblin raiders back to their chief.
REWARD_XP: 150
REWARD_GOLD: 75
REQUIRED_LEVEL: 2
PREREQUISITE: slay_goblin

QUEST_ID: orc_warband
TITLE: The Orc Warband
DESCRIPTION: An orc warband gathers in the hills.
REWARD_XP: 250
REWARD_GOLD: 120
REQUIRED_LEVEL: 3
PREREQUISITE: goblin_chief

QUEST_ID: dragon_hunt
TITLE: The Dragon Hunt
DESCRIPTION: Slay the dragon menacing the mountain pass.
REWARD_XP: 500
REWARD_GOLD: 300
REQUIRED_LEVEL: 6
PREREQUISITE: orc_warband
`

// EnsureDefaultDataFiles creates the data directory and writes default
// catalog files for any that are missing. Existing files are left
// untouched.
func EnsureDefaultDataFiles(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	defaults := map[string]string{
		ItemsFile:  defaultItems,
		QuestsFile: defaultQuests,
	}

	for name, content := range defaults {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}

	return nil
}
