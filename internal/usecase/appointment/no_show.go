package appointment

import (
	"context"
	"time"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

type NoShowAppointment struct {
	repo domain.Repository
}

func NewNoShowAppointment(repo domain.Repository) *NoShowAppointment {
	return &NoShowAppointment{repo: repo}
}

// Execute marks the appointment as a no-show. The transition has no status
// precondition and no fan-out.
func (uc *NoShowAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	domain.MarkNoShow(ap, time.Now())

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
