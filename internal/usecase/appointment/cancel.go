package appointment

import (
	"context"
	"time"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

type CancelAppointment struct {
	repo   domain.Repository
	events EventDispatcher
}

func NewCancelAppointment(repo domain.Repository, events EventDispatcher) *CancelAppointment {
	return &CancelAppointment{repo: repo, events: events}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	if err := domain.Cancel(ap, reason, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		return ap, nil
	}

	uc.events.Dispatch(lifecycleEvent(realtime.EventCancelled, detail, false))

	return detail, nil
}
