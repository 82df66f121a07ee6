package entities

import (
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// Class identifies a playable character class
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
	ClassRogue   Class = "Rogue"
	ClassCleric  Class = "Cleric"
)

// Stat names a character attribute that item effects can modify
type Stat string

const (
	StatHealth    Stat = "health"
	StatMaxHealth Stat = "max_health"
	StatStrength  Stat = "strength"
	StatMagic     Stat = "magic"
	StatGold      Stat = "gold"
)

// MaxInventorySize is the inventory capacity for every character
const MaxInventorySize = 20

// StartingGold is the gold balance of a freshly created character
const StartingGold = 100

// BaseStats holds the class-specific starting stats
type BaseStats struct {
	MaxHealth int
	Strength  int
	Magic     int
}

var classBases = map[Class]BaseStats{
	ClassWarrior: {MaxHealth: 120, Strength: 15, Magic: 5},
	ClassMage:    {MaxHealth: 80, Strength: 5, Magic: 20},
	ClassRogue:   {MaxHealth: 100, Strength: 10, Magic: 10},
	ClassCleric:  {MaxHealth: 90, Strength: 7, Magic: 15},
}

// Classes returns the set of valid character classes
func Classes() []Class {
	return []Class{ClassWarrior, ClassMage, ClassRogue, ClassCleric}
}

// IsValid reports whether the class is one of the playable classes
func (c Class) IsValid() bool {
	_, ok := classBases[c]
	return ok
}

// BaseStatsFor returns the starting stats for a class
func BaseStatsFor(class Class) (BaseStats, bool) {
	stats, ok := classBases[class]
	return stats, ok
}

// Character is the mutable record of a playable entity
type Character struct {
	Name            string
	Class           Class
	Level           int
	Experience      int
	Health          int
	MaxHealth       int
	Strength        int
	Magic           int
	Gold            int
	Inventory       []string
	ActiveQuests    []string
	CompletedQuests []string
	EquippedWeapon  string // item ID, empty when nothing equipped
	EquippedArmor   string
}

// NewCharacter creates a level 1 character with class base stats
func NewCharacter(name string, class Class) (*Character, error) {
	stats, ok := classBases[class]
	if !ok {
		return nil, qcerr.Newf(qcerr.CodeInvalidClass, "invalid character class '%s'", class).
			WithMeta("class", string(class))
	}

	return &Character{
		Name:            name,
		Class:           class,
		Level:           1,
		Experience:      0,
		Health:          stats.MaxHealth,
		MaxHealth:       stats.MaxHealth,
		Strength:        stats.Strength,
		Magic:           stats.Magic,
		Gold:            StartingGold,
		Inventory:       []string{},
		ActiveQuests:    []string{},
		CompletedQuests: []string{},
	}, nil
}

// IsDead reports whether the character is dead
func (c *Character) IsDead() bool {
	return c.Health <= 0
}

// Heal raises health by amount, capped at max health.
// Returns the amount actually healed.
func (c *Character) Heal(amount int) int {
	if amount < 0 {
		return 0
	}

	healed := amount
	if c.Health+amount > c.MaxHealth {
		healed = c.MaxHealth - c.Health
		c.Health = c.MaxHealth
	} else {
		c.Health += amount
	}
	return healed
}

// TakeDamage lowers health, flooring at zero
func (c *Character) TakeDamage(damage int) {
	if damage < 0 {
		return
	}
	c.Health -= damage
	if c.Health < 0 {
		c.Health = 0
	}
}

// HasItem reports whether the item is in the inventory
func (c *Character) HasItem(itemID string) bool {
	for _, id := range c.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// CountItem returns how many copies of the item the inventory holds
func (c *Character) CountItem(itemID string) int {
	count := 0
	for _, id := range c.Inventory {
		if id == itemID {
			count++
		}
	}
	return count
}

// InventorySpaceRemaining returns the number of free inventory slots
func (c *Character) InventorySpaceRemaining() int {
	remaining := MaxInventorySize - len(c.Inventory)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasActiveQuest reports whether the quest is in the active list
func (c *Character) HasActiveQuest(questID string) bool {
	for _, id := range c.ActiveQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// HasCompletedQuest reports whether the quest is in the completed list
func (c *Character) HasCompletedQuest(questID string) bool {
	for _, id := range c.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// ApplyStat applies a signed delta to the named stat. Health is
// clamped to the 0..max health range; strength, magic, and gold
// floor at zero so a draining effect cannot push them negative.
func (c *Character) ApplyStat(stat Stat, delta int) error {
	switch stat {
	case StatHealth:
		c.Health += delta
		if c.Health > c.MaxHealth {
			c.Health = c.MaxHealth
		}
		if c.Health < 0 {
			c.Health = 0
		}
	case StatMaxHealth:
		c.MaxHealth += delta
		if c.Health > c.MaxHealth {
			c.Health = c.MaxHealth
		}
	case StatStrength:
		c.Strength = floorZero(c.Strength + delta)
	case StatMagic:
		c.Magic = floorZero(c.Magic + delta)
	case StatGold:
		c.Gold = floorZero(c.Gold + delta)
	default:
		return qcerr.InvalidArgumentf("unknown stat '%s'", stat)
	}
	return nil
}

func floorZero(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Inventory = append([]string{}, c.Inventory...)
	clone.ActiveQuests = append([]string{}, c.ActiveQuests...)
	clone.CompletedQuests = append([]string{}, c.CompletedQuests...)
	return &clone
}
