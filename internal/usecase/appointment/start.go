package appointment

import (
	"context"
	"time"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

type StartAppointment struct {
	repo   domain.Repository
	events EventDispatcher
}

func NewStartAppointment(repo domain.Repository, events EventDispatcher) *StartAppointment {
	return &StartAppointment{repo: repo, events: events}
}

func (uc *StartAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	if err := domain.Start(ap, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		return ap, nil
	}

	// The client is told their appointment started.
	uc.events.Dispatch(lifecycleEvent(realtime.EventStarted, detail, true))

	return detail, nil
}
