package appointment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory domain.Repository with the same locking
// discipline as the gorm implementation: conflict check and insert happen
// under one mutex, so concurrent bookings contend the way transactions do.
type fakeRepo struct {
	mu sync.Mutex

	salons        map[string]*models.Salon
	professionals map[string]*models.Professional
	services      map[string]*models.Service
	clientsByUser map[string]*models.Client
	schedule      map[string]map[int]*models.ScheduleDay
	daysOff       map[string][]string
	appointments  map[string]*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:        map[string]*models.Salon{},
		professionals: map[string]*models.Professional{},
		services:      map[string]*models.Service{},
		clientsByUser: map[string]*models.Client{},
		schedule:      map[string]map[int]*models.ScheduleDay{},
		daysOff:       map[string][]string{},
		appointments:  map[string]*models.Appointment{},
	}
}

func (r *fakeRepo) GetSalon(_ context.Context, id string) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetProfessional(_ context.Context, id string) (*models.Professional, error) {
	if p, ok := r.professionals[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetClientByUser(_ context.Context, userID string) (*models.Client, error) {
	if c, ok := r.clientsByUser[userID]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) CreateClient(_ context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	r.clientsByUser[client.UserID] = client
	return nil
}

func (r *fakeRepo) GetScheduleDay(_ context.Context, professionalID string, dayOfWeek int) (*models.ScheduleDay, error) {
	if days, ok := r.schedule[professionalID]; ok {
		if d, ok := days[dayOfWeek]; ok {
			return d, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) HasDayOff(_ context.Context, professionalID, date string) (bool, error) {
	for _, d := range r.daysOff[professionalID] {
		if d == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListActiveAppointments(_ context.Context, professionalID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(professionalID, date, ""), nil
}

func (r *fakeRepo) activeLocked(professionalID, date, excludeID string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID || ap.ScheduledDate != date {
			continue
		}
		if excludeID != "" && ap.ID == excludeID {
			continue
		}
		if domain.Status(ap.Status).Terminal() {
			continue
		}
		out = append(out, *ap)
	}
	return out
}

func (r *fakeRepo) CreateIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate, err := domain.IntervalOf(ap.ScheduledTime, ap.DurationMin)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	busy := domain.BusyIntervals(r.activeLocked(ap.ProfessionalID, ap.ScheduledDate, ""))
	if domain.ConflictsWith(candidate, busy) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) RescheduleIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate, err := domain.IntervalOf(ap.ScheduledTime, ap.DurationMin)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	busy := domain.BusyIntervals(r.activeLocked(ap.ProfessionalID, ap.ScheduledDate, ap.ID))
	if domain.ConflictsWith(candidate, busy) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap, ok := r.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if s, ok := r.salons[ap.SalonID]; ok {
		ap.Salon = *s
	}
	if p, ok := r.professionals[ap.ProfessionalID]; ok {
		ap.Professional = *p
	}
	if sv, ok := r.services[ap.ServiceID]; ok {
		ap.Service = *sv
	}
	for _, c := range r.clientsByUser {
		if c.ID == ap.ClientID {
			ap.Client = *c
		}
	}
	return ap, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.ProfessionalID != "" && ap.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.ClientID != "" && ap.ClientID != f.ClientID {
			continue
		}
		if f.SalonID != "" && ap.SalonID != f.SalonID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.Date != "" && ap.ScheduledDate != f.Date {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeDispatcher records every dispatched event.
type fakeDispatcher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (d *fakeDispatcher) Dispatch(ev realtime.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func (d *fakeDispatcher) all() []realtime.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]realtime.Event(nil), d.events...)
}

// seed populates one salon with one professional, one 40-minute service and
// one registered client, the baseline for most scenarios.
func seed(r *fakeRepo) (salonID, proID, serviceID, clientUserID string) {
	salonID, proID, serviceID, clientUserID = "salon-1", "pro-1", "svc-1", "user-1"

	r.salons[salonID] = &models.Salon{ID: salonID, OwnerID: "owner-1", Name: "Studio Bela"}
	r.professionals[proID] = &models.Professional{
		ID: proID, SalonID: salonID, UserID: "pro-user-1", Name: "Marina",
	}
	r.services[serviceID] = &models.Service{
		ID: serviceID, SalonID: salonID, Name: "Corte", DurationMin: 40, Price: 80,
	}
	r.clientsByUser[clientUserID] = &models.Client{
		ID: "client-1", UserID: clientUserID, Name: "João", Phone: "11999990000",
	}

	for dow := 0; dow <= 6; dow++ {
		if r.schedule[proID] == nil {
			r.schedule[proID] = map[int]*models.ScheduleDay{}
		}
		r.schedule[proID][dow] = &models.ScheduleDay{
			ProfessionalID: proID, DayOfWeek: dow,
			StartTime: "09:00", EndTime: "19:00", IsWorking: dow != 0,
		}
	}
	return
}
