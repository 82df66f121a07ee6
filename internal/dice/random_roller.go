package dice

import (
	"errors"
	"math/rand"
)

// randomRoller implements Roller using math/rand
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller backed by a randomly seeded source
func NewRandomRoller() Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewSeededRoller creates a roller with a fixed seed so battle
// outcomes are reproducible
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice sides")
	}

	rolls := make([]int, count)
	total := bonus
	for i := 0; i < count; i++ {
		roll := r.rng.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	return &RollResult{
		Total: total,
		Rolls: rolls,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}
