package weapon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDamage(t *testing.T) {
	assert.Equal(t, 400.0, Damage(Sniper))
	assert.Equal(t, 50.0, Damage(AssaultRifle))
	assert.Equal(t, 50.0, Damage("ROCKET"))
	assert.Equal(t, 50.0, Damage(Normalize("")))
	assert.Equal(t, 400.0, Damage(Normalize(" SNIPER ")))
}
