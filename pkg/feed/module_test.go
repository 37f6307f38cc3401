package feed

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saboracaiteria/br.canaa/pkg/protocol"
	"github.com/saboracaiteria/br.canaa/pkg/registry"
	"github.com/saboracaiteria/br.canaa/pkg/utils"
)

type fakeClient struct {
	mutex     sync.Mutex
	channels  []string
	published [][]byte
	err       error
}

func (c *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", c.err)
}

func (c *fakeClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.channels = append(c.channels, channel)
	c.published = append(c.published, message.([]byte))
	return redis.NewIntResult(1, c.err)
}

func (c *fakeClient) count() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.published)
}

func TestDisabledWithoutAddress(t *testing.T) {
	assert.Nil(t, New(Settings{}))
}

func TestForward(t *testing.T) {
	client := &fakeClient{}
	f := WithClient(client, "")

	err := f.Forward(context.Background(), registry.Notice{
		Kind: registry.NoticeRoomCreated,
		Room: protocol.RoomInfo{RoomCode: "ABC123", GameMode: "duo", MaxPlayers: 8},
	})
	require.NoError(t, err)
	require.Equal(t, []string{DefaultChannel}, client.channels)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(client.published[0], &decoded))
	assert.Equal(t, "room-created", decoded["kind"])
	assert.Equal(t, "ABC123", decoded["room"].(map[string]interface{})["roomCode"])
	assert.NotContains(t, decoded, "summary")
}

func TestForwardError(t *testing.T) {
	client := &fakeClient{err: errors.New("down")}
	f := WithClient(client, "rooms")

	assert.Error(t, f.Forward(context.Background(), registry.Notice{}))
	assert.ErrorContains(t, f.Ping(context.Background()), "redis unreachable")
}

func TestWatch(t *testing.T) {
	client := &fakeClient{}
	f := WithClient(client, "rooms")
	topic := utils.NewTopic[registry.Notice]()

	ctx, cancel := context.WithCancel(context.Background())
	sub := topic.Subscribe()
	done := make(chan struct{})
	go func() {
		f.Watch(ctx, sub)
		close(done)
	}()

	topic.Publish(registry.Notice{Kind: registry.NoticeGameStarted})
	topic.Publish(registry.Notice{Kind: registry.NoticeRoomDestroyed})
	assert.Eventually(t, func() bool { return client.count() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, 0, topic.NumSubscribers())
}
