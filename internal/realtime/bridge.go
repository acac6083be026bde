package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

const eventsChannel = "appointments:events"

// Bridge relays events through Redis pub/sub so every instance's hub sees
// transitions committed by any other instance.
type Bridge struct {
	rdb *redis.Client
}

func NewBridge(addr string) *Bridge {
	return &Bridge{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (b *Bridge) Publish(ctx context.Context, payload []byte) error {
	return b.rdb.Publish(ctx, eventsChannel, payload).Err()
}

// Run subscribes and feeds the local hub until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, hub *Hub) {
	pubsub := b.rdb.Subscribe(ctx, eventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Println("realtime: bad bridge payload:", err)
				continue
			}

			wire, err := ev.WireMessage()
			if err != nil {
				continue
			}
			hub.Broadcast(ev.Rooms(), wire)
		}
	}
}

func (b *Bridge) Close() error {
	return b.rdb.Close()
}
