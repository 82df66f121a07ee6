package entities

import "fmt"

// BattleState is the combat state machine position
type BattleState string

const (
	BattleStateNotStarted BattleState = "not_started"
	BattleStatePlayerTurn BattleState = "player_turn"
	BattleStateEnemyTurn  BattleState = "enemy_turn"
	BattleStateResolved   BattleState = "resolved"
)

// BattleOutcome is the terminal result of a battle
type BattleOutcome string

const (
	BattleOutcomeNone          BattleOutcome = ""
	BattleOutcomePlayerVictory BattleOutcome = "player_victory"
	BattleOutcomeEnemyVictory  BattleOutcome = "enemy_victory"
	BattleOutcomeEscaped       BattleOutcome = "escaped"
)

// PlayerAction is a combat decision for one player turn
type PlayerAction string

const (
	ActionAttack  PlayerAction = "attack"
	ActionSpecial PlayerAction = "special"
	ActionEscape  PlayerAction = "escape"
)

// Battle is one character-versus-enemy encounter
type Battle struct {
	ID        string
	Character *Character
	Enemy     *Enemy
	State     BattleState
	Outcome   BattleOutcome
	Round     int
	Log       []string
}

// NewBattle creates a battle in the NotStarted state
func NewBattle(id string, character *Character, enemy *Enemy) *Battle {
	return &Battle{
		ID:        id,
		Character: character,
		Enemy:     enemy,
		State:     BattleStateNotStarted,
	}
}

// IsActive reports whether the battle still accepts turns
func (b *Battle) IsActive() bool {
	return b.State == BattleStatePlayerTurn || b.State == BattleStateEnemyTurn
}

// Logf appends a formatted entry to the battle log
func (b *Battle) Logf(format string, args ...any) {
	b.Log = append(b.Log, fmt.Sprintf(format, args...))
}

// Resolve moves the battle to its terminal state
func (b *Battle) Resolve(outcome BattleOutcome) {
	b.State = BattleStateResolved
	b.Outcome = outcome
}
