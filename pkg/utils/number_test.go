package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 7.5, RoundMoney(7.499999))
	assert.Equal(t, 3.33, RoundMoney(10.0/3))
	assert.Equal(t, -1.24, RoundMoney(-1.2351))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	assert.NoError(t, err)
	assert.Len(t, id, 6)
}

func TestRoundMoney_Limites(t *testing.T) {
	assert.Equal(t, 0.0, RoundMoney(math.NaN()))
	assert.Equal(t, 0.0, RoundMoney(math.Inf(1)))
	assert.False(t, math.Signbit(RoundMoney(-0.001)))
}

func TestGenerateID_Alfabeto(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := GenerateID()
		assert.NoError(t, err)
		assert.NotContains(t, id, "0")
		assert.NotContains(t, id, "O")
		assert.NotContains(t, id, "l")
	}
}
