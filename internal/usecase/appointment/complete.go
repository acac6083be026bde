package appointment

import (
	"context"
	"time"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

type CompleteAppointment struct {
	repo   domain.Repository
	events EventDispatcher
}

func NewCompleteAppointment(repo domain.Repository, events EventDispatcher) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, events: events}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	professionalNotes string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	if err := domain.Complete(ap, professionalNotes, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	detail, err := uc.repo.GetAppointmentDetail(ctx, ap.ID)
	if err != nil {
		return ap, nil
	}

	uc.events.Dispatch(lifecycleEvent(realtime.EventCompleted, detail, true))

	return detail, nil
}
