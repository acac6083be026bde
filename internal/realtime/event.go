package realtime

import "encoding/json"

// Event names pushed over the realtime channel.
const (
	EventCreated     = "appointment:created"
	EventCancelled   = "appointment:cancelled"
	EventRescheduled = "appointment:rescheduled"
	EventStarted     = "appointment:started"
	EventCompleted   = "appointment:completed"
)

// NotificationDraft is a stored notification the dispatcher persists for a
// user as part of handling an event.
type NotificationDraft struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Data    any    `json:"data,omitempty"`
}

// Event is one appointment lifecycle change fanned out to up to three
// audiences: the owning salon, the assigned professional, and (for start and
// complete) the client's user.
type Event struct {
	Name           string `json:"event"`
	SalonID        string `json:"salon_id,omitempty"`
	ProfessionalID string `json:"professional_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	Payload        any    `json:"data"`

	Notifications []NotificationDraft `json:"notifications,omitempty"`
}

// Room names mirror the channels clients join.
func SalonRoom(id string) string        { return "salon:" + id }
func ProfessionalRoom(id string) string { return "professional:" + id }
func UserRoom(id string) string         { return "user:" + id }

// Rooms lists the broadcast targets for this event.
func (ev Event) Rooms() []string {
	var rooms []string
	if ev.SalonID != "" {
		rooms = append(rooms, SalonRoom(ev.SalonID))
	}
	if ev.ProfessionalID != "" {
		rooms = append(rooms, ProfessionalRoom(ev.ProfessionalID))
	}
	if ev.UserID != "" {
		rooms = append(rooms, UserRoom(ev.UserID))
	}
	return rooms
}

type wireMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// WireMessage is what subscribers actually receive: the event name plus the
// joined appointment record.
func (ev Event) WireMessage() ([]byte, error) {
	return json.Marshal(wireMessage{Event: ev.Name, Data: ev.Payload})
}
