package broker

import (
	"context"
	"encoding/json"
	"log"

	"go-stockcontrol-ws/internal/model"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "sync:doc:"

type redisBroker struct {
	client *redis.Client
}

// NewRedisBroker publishes snapshots over Redis pub/sub so every running
// instance sees writes from every other one. go-redis reconnects the
// subscription on its own; transient errors are logged and the watch keeps
// going.
func NewRedisBroker(client *redis.Client) SyncBroker {
	return &redisBroker{client: client}
}

func (b *redisBroker) Publish(ctx context.Context, username string, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelPrefix+username, payload).Err()
}

func (b *redisBroker) Subscribe(ctx context.Context, username string) (<-chan model.Snapshot, func(), error) {
	sub := b.client.Subscribe(ctx, channelPrefix+username)
	// Force the subscription to establish before returning.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	out := make(chan model.Snapshot)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var snap model.Snapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
				log.Printf("sync: dropping malformed update for %s: %v", username, err)
				continue
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() {
		if err := sub.Close(); err != nil {
			log.Printf("sync: closing subscription for %s: %v", username, err)
		}
	}
	return out, stop, nil
}
