package chanlock

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	var buf bytes.Buffer
	c := New(zerolog.New(&buf), time.Second)
	c.Mark("tick")

	now := time.Now()
	assert.True(t, c.Check(now))
	assert.Empty(t, buf.String())

	assert.False(t, c.Check(now.Add(2*time.Second)))
	assert.Contains(t, buf.String(), "no longer healthy")
	assert.Contains(t, buf.String(), `"mark":"tick"`)

	buf.Reset()
	assert.False(t, c.Check(now.Add(3*time.Second)))
	assert.Empty(t, buf.String(), "a stall is only reported once")

	c.Mark("tick")
	assert.True(t, c.Check(time.Now()))
	assert.Contains(t, buf.String(), "recovered")
}

func TestDefaultTimeout(t *testing.T) {
	c := New(zerolog.Nop(), 0)
	assert.Equal(t, TIMEOUT_DURATION, c.timeout)
}
