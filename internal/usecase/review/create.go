package review

import (
	"context"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

type Repository interface {
	// GetAppointmentWithClient loads the appointment with its client record,
	// or a not-found error.
	GetAppointmentWithClient(ctx context.Context, id string) (*models.Appointment, error)

	HasReview(ctx context.Context, appointmentID string) (bool, error)

	// CreateReview inserts the review and recomputes the denormalized
	// average/count on the professional and salon rows in one transaction.
	CreateReview(ctx context.Context, rv *models.Review) error
}

type CreateInput struct {
	AppointmentID   string
	RequesterUserID string
	Rating          int
	Comment         string
}

type CreateReview struct {
	repo Repository
}

func NewCreateReview(repo Repository) *CreateReview {
	return &CreateReview{repo: repo}
}

func (uc *CreateReview) Execute(ctx context.Context, in CreateInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	ap, err := uc.repo.GetAppointmentWithClient(ctx, in.AppointmentID)
	if err != nil {
		ap = nil
	}

	exists := false
	if ap != nil {
		exists, err = uc.repo.HasReview(ctx, ap.ID)
		if err != nil {
			return nil, err
		}
	}

	if e := Check(ap, in.RequesterUserID, exists); !e.CanReview {
		return nil, httperr.ErrBusiness(e.Reason)
	}

	rv := &models.Review{
		AppointmentID:  ap.ID,
		ClientID:       ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
		SalonID:        ap.SalonID,
		Rating:         in.Rating,
		Comment:        in.Comment,
	}

	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// CanReview answers the advisory query without mutating anything.
func (uc *CreateReview) CanReview(ctx context.Context, appointmentID, requesterUserID string) (Eligibility, error) {
	ap, err := uc.repo.GetAppointmentWithClient(ctx, appointmentID)
	if err != nil {
		return Check(nil, requesterUserID, false), nil
	}

	exists, err := uc.repo.HasReview(ctx, ap.ID)
	if err != nil {
		return Eligibility{}, err
	}
	return Check(ap, requesterUserID, exists), nil
}
