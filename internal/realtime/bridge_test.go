package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)

	hub := NewHub()
	sub := NewConn("sub", 4)
	hub.Register(sub)
	hub.Join(sub, SalonRoom("s1"))

	bridge := NewBridge(srv.Addr())
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bridge.Run(ctx, hub)

	// Wait for the subscription before publishing.
	require.Eventually(t, func() bool {
		subs, err := bridge.rdb.PubSubNumSub(ctx, eventsChannel).Result()
		return err == nil && subs[eventsChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	raw, err := json.Marshal(Event{
		Name:    EventRescheduled,
		SalonID: "s1",
		Payload: map[string]string{"id": "ap-1"},
	})
	require.NoError(t, err)
	require.NoError(t, bridge.Publish(ctx, raw))

	var got []byte
	require.Eventually(t, func() bool {
		select {
		case got = <-sub.Send:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(got, &wire))
	assert.Equal(t, EventRescheduled, wire["event"])
}

func TestBridgeIgnoresMalformedPayload(t *testing.T) {
	srv := miniredis.RunT(t)

	hub := NewHub()
	sub := NewConn("sub", 4)
	hub.Register(sub)
	hub.Join(sub, SalonRoom("s1"))

	bridge := NewBridge(srv.Addr())
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bridge.Run(ctx, hub)

	require.Eventually(t, func() bool {
		subs, err := bridge.rdb.PubSubNumSub(ctx, eventsChannel).Result()
		return err == nil && subs[eventsChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, bridge.Publish(ctx, []byte("not json")))

	good, _ := json.Marshal(Event{Name: EventCreated, SalonID: "s1"})
	require.NoError(t, bridge.Publish(ctx, good))

	// The malformed payload is skipped; the valid one still arrives.
	var got []byte
	require.Eventually(t, func() bool {
		select {
		case got = <-sub.Send:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(got, &wire))
	assert.Equal(t, EventCreated, wire["event"])
	assert.Empty(t, sub.Send)
}
