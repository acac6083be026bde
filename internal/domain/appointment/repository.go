package appointment

import (
	"context"

	"github.com/bellagenda/salon-scheduler/internal/models"
)

// ListFilter narrows the role-scoped appointment listing. Empty fields are
// ignored.
type ListFilter struct {
	SalonID        string
	ProfessionalID string
	ClientID       string
	Status         string
	Date           string
	FromDate       string
	ToDate         string
}

type Repository interface {
	// -------- Lookups --------
	GetSalon(ctx context.Context, id string) (*models.Salon, error)

	GetProfessional(ctx context.Context, id string) (*models.Professional, error)

	GetService(ctx context.Context, id string) (*models.Service, error)

	GetClientByUser(ctx context.Context, userID string) (*models.Client, error)

	CreateClient(ctx context.Context, client *models.Client) error

	// -------- Schedule --------
	GetScheduleDay(
		ctx context.Context,
		professionalID string,
		dayOfWeek int,
	) (*models.ScheduleDay, error)

	HasDayOff(
		ctx context.Context,
		professionalID string,
		date string,
	) (bool, error)

	// -------- Appointments --------
	ListActiveAppointments(
		ctx context.Context,
		professionalID string,
		date string,
	) ([]models.Appointment, error)

	// CreateIfSlotFree inserts inside one atomic unit of work: it locks the
	// professional's non-terminal appointments for the date, re-runs the
	// overlap check, and only then writes. Two concurrent bookings for the
	// same slot cannot both succeed.
	CreateIfSlotFree(ctx context.Context, ap *models.Appointment) error

	// RescheduleIfSlotFree persists the already-mutated appointment under
	// the same locking discipline, excluding the appointment's own id from
	// the conflict set.
	RescheduleIfSlotFree(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// GetAppointmentDetail loads the joined view (salon, professional,
	// client, service) used by responses and fan-out payloads.
	GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
}
