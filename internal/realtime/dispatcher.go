package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/bellagenda/salon-scheduler/internal/models"
)

// NotificationStore persists the stored-notification side of an event.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Publisher forwards serialized events to other instances. Optional.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Dispatcher fans appointment lifecycle events out to stored notifications
// and live subscribers. Dispatch never blocks the caller and delivery
// failures never fail the transition that produced the event: the queue
// drops when full and the worker only logs persistence errors.
type Dispatcher struct {
	store NotificationStore
	hub   *Hub
	pub   Publisher
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(store NotificationStore, hub *Hub, pub Publisher) *Dispatcher {
	d := &Dispatcher{
		store: store,
		hub:   hub,
		pub:   pub,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx := context.Background()

		for _, draft := range ev.Notifications {
			var dataJSON string
			if draft.Data != nil {
				if b, err := json.Marshal(draft.Data); err == nil {
					dataJSON = string(b)
				}
			}

			n := models.Notification{
				UserID:  draft.UserID,
				Type:    draft.Type,
				Title:   draft.Title,
				Content: draft.Content,
				Data:    dataJSON,
			}
			if err := d.store.CreateNotification(ctx, &n); err != nil {
				log.Println("realtime: notification write error:", err)
			}
		}

		if d.pub != nil {
			raw, err := json.Marshal(ev)
			if err != nil {
				log.Println("realtime: event marshal error:", err)
				continue
			}
			if err := d.pub.Publish(ctx, raw); err != nil {
				log.Println("realtime: publish error:", err)
			}
			continue
		}

		msg, err := ev.WireMessage()
		if err != nil {
			log.Println("realtime: event marshal error:", err)
			continue
		}
		d.hub.Broadcast(ev.Rooms(), msg)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Full queue means a stalled worker; the API keeps answering.
		log.Println("realtime: event queue full, dropping", ev.Name)
	}
}

// Close drains the queue and stops the worker. Used by tests and shutdown.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
