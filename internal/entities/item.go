package entities

import (
	"fmt"
	"strconv"
	"strings"

	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// ItemType categorizes catalog items
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
)

// IsValid reports whether the item type is one of the known types
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable:
		return true
	}
	return false
}

// Effect is a parsed item stat effect: one stat, one signed delta
type Effect struct {
	Stat  Stat
	Delta int
}

// String renders the effect in its catalog form
func (e Effect) String() string {
	return fmt.Sprintf("%s:%d", e.Stat, e.Delta)
}

// ParseEffect parses an effect string of the form "stat:delta".
// Malformed effects are a catalog loading error, never a runtime one.
func ParseEffect(raw string) (Effect, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return Effect{}, qcerr.DataFormatf("effect '%s' is not in stat:value form", raw)
	}

	stat := Stat(strings.TrimSpace(parts[0]))
	switch stat {
	case StatHealth, StatMaxHealth, StatStrength, StatMagic, StatGold:
	default:
		return Effect{}, qcerr.DataFormatf("effect '%s' names unknown stat '%s'", raw, stat)
	}

	delta, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Effect{}, qcerr.DataFormatf("effect '%s' has a non-integer value", raw)
	}

	return Effect{Stat: stat, Delta: delta}, nil
}

// ItemDefinition is a read-only catalog entry for an item
type ItemDefinition struct {
	ID          string
	Name        string
	Type        ItemType
	Effect      Effect
	Cost        int
	Description string
}
