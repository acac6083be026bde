package appointment

import (
	"context"
	"time"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

type RescheduleAppointment struct {
	repo   domain.Repository
	events EventDispatcher
}

func NewRescheduleAppointment(repo domain.Repository, events EventDispatcher) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, events: events}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	newDate string,
	newTime string,
) (*models.Appointment, error) {

	if _, err := domain.ParseDate(newDate); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := domain.ParseClock(newTime); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	if err := domain.Reschedule(ap, newDate, newTime, time.Now()); err != nil {
		return nil, err
	}

	// Conflict check excludes this appointment's own id, so rescheduling to
	// the current slot is a no-op success.
	if err := uc.repo.RescheduleIfSlotFree(ctx, ap); err != nil {
		return nil, err
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		return ap, nil
	}

	uc.events.Dispatch(lifecycleEvent(realtime.EventRescheduled, detail, false))

	return detail, nil
}
