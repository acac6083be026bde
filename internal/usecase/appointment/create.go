package appointment

import (
	"context"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	SalonID        string
	ProfessionalID string
	ServiceID      string

	ScheduledDate string // YYYY-MM-DD
	ScheduledTime string // HH:MM
	ClientNotes   string

	// RequesterUserID resolves the booking client. When the requester has
	// no client record, ClientName/ClientPhone create a guest profile.
	RequesterUserID string
	ClientName      string
	ClientPhone     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events EventDispatcher
}

func NewCreateAppointment(repo domain.Repository, events EventDispatcher) *CreateAppointment {
	return &CreateAppointment{repo: repo, events: events}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	if _, err := domain.ParseDate(in.ScheduledDate); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := domain.ParseClock(in.ScheduledTime); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if _, err := uc.repo.GetSalon(ctx, in.SalonID); err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if _, err := uc.repo.GetProfessional(ctx, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	// Duration and price are stamped now; later service edits never touch
	// booked appointments.
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		SalonID:        in.SalonID,
		ProfessionalID: in.ProfessionalID,
		ClientID:       client.ID,
		ServiceID:      service.ID,
		ScheduledDate:  in.ScheduledDate,
		ScheduledTime:  in.ScheduledTime,
		DurationMin:    service.DurationMin,
		Price:          service.Price,
		Status:         string(domain.InitialStatus()),
		ClientNotes:    in.ClientNotes,
	}

	if err := uc.repo.CreateIfSlotFree(ctx, ap); err != nil {
		return nil, err
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		// The booking exists; return it without the joined view.
		return ap, nil
	}

	uc.events.Dispatch(createdEvent(detail))

	return detail, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateInput,
) (*models.Client, error) {

	client, err := uc.repo.GetClientByUser(ctx, in.RequesterUserID)
	if err == nil {
		return client, nil
	}

	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrBusiness("client_required")
	}

	guest := &models.Client{
		UserID: in.RequesterUserID,
		Name:   in.ClientName,
		Phone:  in.ClientPhone,
	}
	if err := uc.repo.CreateClient(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}
