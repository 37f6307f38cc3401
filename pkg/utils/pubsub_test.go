package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicFanOut(t *testing.T) {
	topic := NewTopic[int]()
	a := topic.Subscribe()
	b := topic.Subscribe()
	require.Equal(t, 2, topic.NumSubscribers())

	topic.Publish(7)
	assert.Equal(t, 7, <-a.Recv())
	assert.Equal(t, 7, <-b.Recv())

	b.Done()
	assert.Equal(t, 1, topic.NumSubscribers())
	topic.Publish(8)
	assert.Equal(t, 8, <-a.Recv())
	assert.Len(t, b.Recv(), 0)
}

func TestTopicNeverBlocks(t *testing.T) {
	topic := NewTopic[string]()
	slow := topic.SubscribeBuffered(1)

	topic.Publish("first")
	topic.Publish("second")
	topic.Publish("third")

	assert.Equal(t, uint64(2), topic.Dropped())
	assert.Equal(t, "first", <-slow.Recv())
}

func TestSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession(ctx, "abc")
	assert.Equal(t, "abc", session.ID())
	assert.False(t, session.IsDone())
	assert.False(t, session.Started().IsZero())

	cancel()
	assert.True(t, session.IsDone())

	other := NewSession(context.Background(), "def")
	other.Cancel()
	assert.True(t, other.IsDone())
}
