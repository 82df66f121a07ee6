package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRoller_Roll(t *testing.T) {
	roller := NewRandomRoller()

	result, err := roller.Roll(3, 6, 2)
	require.NoError(t, err)

	assert.Len(t, result.Rolls, 3)
	assert.Equal(t, 2, result.Bonus)
	for _, roll := range result.Rolls {
		assert.GreaterOrEqual(t, roll, 1)
		assert.LessOrEqual(t, roll, 6)
	}

	sum := result.Bonus
	for _, roll := range result.Rolls {
		sum += roll
	}
	assert.Equal(t, sum, result.Total)
}

func TestRandomRoller_InvalidInput(t *testing.T) {
	roller := NewRandomRoller()

	_, err := roller.Roll(0, 6, 0)
	assert.Error(t, err)

	_, err = roller.Roll(1, 0, 0)
	assert.Error(t, err)
}

func TestSeededRoller_Deterministic(t *testing.T) {
	first := NewSeededRoller(42)
	second := NewSeededRoller(42)

	for i := 0; i < 10; i++ {
		a, err := first.Roll(1, 20, 0)
		require.NoError(t, err)
		b, err := second.Roll(1, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, a.Total, b.Total)
	}
}

func TestMockRoller_Roll(t *testing.T) {
	mock := NewMockRoller()
	mock.SetRolls([]int{2, 1})

	result, err := mock.Roll(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	result, err = mock.Roll(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	_, err = mock.Roll(1, 2, 0)
	assert.Error(t, err, "should run out of predetermined rolls")
}
