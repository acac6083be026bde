package appointment

import (
	"fmt"

	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

// EventDispatcher is the fan-out seam. Dispatch must never block and its
// outcome never affects the transition that triggered it.
type EventDispatcher interface {
	Dispatch(ev realtime.Event)
}

// lifecycleEvent assembles the broadcast for a transition from the joined
// appointment view. The client's user channel is included only for start
// and complete.
func lifecycleEvent(name string, detail *models.Appointment, includeClient bool) realtime.Event {
	ev := realtime.Event{
		Name:           name,
		SalonID:        detail.SalonID,
		ProfessionalID: detail.ProfessionalID,
		Payload:        detail,
	}
	if includeClient {
		ev.UserID = detail.Client.UserID
	}
	return ev
}

// createdEvent additionally persists a stored notification for the salon
// owner and the professional's user.
func createdEvent(detail *models.Appointment) realtime.Event {
	ev := lifecycleEvent(realtime.EventCreated, detail, false)

	when := fmt.Sprintf("%s às %s", detail.ScheduledDate, detail.ScheduledTime)
	data := map[string]any{"appointment_id": detail.ID}

	ev.Notifications = []realtime.NotificationDraft{
		{
			UserID:  detail.Salon.OwnerID,
			Type:    "new_appointment",
			Title:   "Novo Agendamento",
			Content: fmt.Sprintf("%s agendou %s para %s", detail.Client.Name, detail.Service.Name, when),
			Data:    data,
		},
		{
			UserID:  detail.Professional.UserID,
			Type:    "new_appointment",
			Title:   "Novo Agendamento",
			Content: fmt.Sprintf("%s agendou com você: %s - %s", detail.Client.Name, detail.Service.Name, when),
			Data:    data,
		},
	}
	return ev
}
