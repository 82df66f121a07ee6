package entities

import (
	qcerr "github.com/KirkDiggler/quest-chronicles/internal/errors"
)

// EnemyType identifies an enemy template in the fixed bestiary
type EnemyType string

const (
	EnemyGoblin EnemyType = "goblin"
	EnemyOrc    EnemyType = "orc"
	EnemyDragon EnemyType = "dragon"
)

// Enemy is a combat opponent instance. The template stats are fixed;
// only Health changes during a battle.
type Enemy struct {
	Name       string
	Health     int
	MaxHealth  int
	Strength   int
	Magic      int
	XPReward   int
	GoldReward int
}

var enemyTemplates = map[EnemyType]Enemy{
	EnemyGoblin: {
		Name:       "Goblin",
		Health:     50,
		MaxHealth:  50,
		Strength:   8,
		Magic:      2,
		XPReward:   25,
		GoldReward: 10,
	},
	EnemyOrc: {
		Name:       "Orc",
		Health:     80,
		MaxHealth:  80,
		Strength:   12,
		Magic:      5,
		XPReward:   50,
		GoldReward: 25,
	},
	EnemyDragon: {
		Name:       "Dragon",
		Health:     200,
		MaxHealth:  200,
		Strength:   25,
		Magic:      15,
		XPReward:   200,
		GoldReward: 100,
	},
}

// NewEnemy instantiates an enemy from its template
func NewEnemy(enemyType EnemyType) (*Enemy, error) {
	template, ok := enemyTemplates[enemyType]
	if !ok {
		return nil, qcerr.InvalidTargetf("enemy '%s' is not recognized", enemyType)
	}

	enemy := template
	return &enemy, nil
}

// EnemyTypeForLevel selects the enemy tier for a character level
func EnemyTypeForLevel(level int) EnemyType {
	switch {
	case level <= 2:
		return EnemyGoblin
	case level <= 5:
		return EnemyOrc
	default:
		return EnemyDragon
	}
}

// IsDefeated reports whether the enemy is out of health
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

// TakeDamage lowers health, flooring at zero
func (e *Enemy) TakeDamage(damage int) {
	if damage < 0 {
		return
	}
	e.Health -= damage
	if e.Health < 0 {
		e.Health = 0
	}
}
