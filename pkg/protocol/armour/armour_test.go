package armour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAbsorbedByArmour(t *testing.T) {
	a, h := Apply(100, 100, 50)
	assert.Equal(t, 25.0, a)
	assert.Equal(t, 100.0, h)

	a, h = Apply(75, 100, 50)
	assert.Equal(t, 0.0, a)
	assert.Equal(t, 100.0, h)
}

func TestApplySpillsOntoHealth(t *testing.T) {
	a, h := Apply(100, 100, 400)
	assert.Equal(t, 0.0, a)
	assert.InDelta(t, 100-(600-100)/1.5, h, 1e-9)

	a, h = Apply(30, 100, 50)
	assert.Equal(t, 0.0, a)
	assert.InDelta(t, 70.0, h, 1e-9)
}

func TestApplyWithoutArmour(t *testing.T) {
	a, h := Apply(0, 100, 50)
	assert.Equal(t, 0.0, a)
	assert.Equal(t, 50.0, h)
}
