package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEffect(t *testing.T) {
	tests := []struct {
		raw     string
		want    Effect
		wantErr bool
	}{
		{raw: "strength:5", want: Effect{Stat: StatStrength, Delta: 5}},
		{raw: "health: 20", want: Effect{Stat: StatHealth, Delta: 20}},
		{raw: "magic:-3", want: Effect{Stat: StatMagic, Delta: -3}},
		{raw: "max_health:10", want: Effect{Stat: StatMaxHealth, Delta: 10}},
		{raw: "strength", wantErr: true},
		{raw: "strength:lots", wantErr: true},
		{raw: "charisma:5", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			effect, err := ParseEffect(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, effect)
		})
	}
}

func TestItemType_IsValid(t *testing.T) {
	assert.True(t, ItemTypeWeapon.IsValid())
	assert.True(t, ItemTypeArmor.IsValid())
	assert.True(t, ItemTypeConsumable.IsValid())
	assert.False(t, ItemType("trinket").IsValid())
}
