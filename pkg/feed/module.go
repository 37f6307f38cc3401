package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/saboracaiteria/br.canaa/pkg/registry"
	"github.com/saboracaiteria/br.canaa/pkg/utils"
)

const DefaultChannel = "canaa:rooms"

type Settings struct {
	Address  string
	Password string
	DB       int
	Channel  string
}

// Client is the part of a Redis client the feed needs.
type Client interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

var _ Client = &redis.Client{}

// Feed republishes room lifecycle notices on a Redis channel.
type Feed struct {
	client  Client
	channel string
}

// New connects to Redis. It returns nil when no address is configured.
func New(settings Settings) *Feed {
	if settings.Address == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     settings.Address,
		Password: settings.Password,
		DB:       settings.DB,
	})
	return WithClient(client, settings.Channel)
}

func WithClient(client Client, channel string) *Feed {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Feed{client: client, channel: channel}
}

func (f *Feed) Ping(ctx context.Context) error {
	err := f.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

func (f *Feed) Forward(ctx context.Context, notice registry.Notice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, f.channel, data).Err()
}

// Watch forwards notices until ctx is done. Publish failures are logged
// and the notice is dropped.
func (f *Feed) Watch(ctx context.Context, notices *utils.Subscriber[registry.Notice]) {
	defer notices.Done()

	for {
		select {
		case notice := <-notices.Recv():
			err := f.Forward(ctx, notice)
			if err != nil {
				log.Warn().Err(err).Str("kind", string(notice.Kind)).Msg("could not publish notice")
			}
		case <-ctx.Done():
			return
		}
	}
}
