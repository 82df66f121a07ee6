package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total int
	Rolls []int
	Bonus int
	Count int
	Sides int
}
