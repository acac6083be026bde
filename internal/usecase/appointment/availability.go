package appointment

import (
	"context"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
)

type AvailabilityInput struct {
	ProfessionalID string
	Date           string // YYYY-MM-DD
	ServiceID      string // optional; empty means the 30-minute default
}

type GetAvailability struct {
	repo domain.Repository

	// respectDaysOff makes a covering day-off range blank the whole date.
	// Day-off ranges are informational by default, so this is an operator
	// opt-in.
	respectDaysOff bool
}

func NewGetAvailability(repo domain.Repository, respectDaysOff bool) *GetAvailability {
	return &GetAvailability{repo: repo, respectDaysOff: respectDaysOff}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.Slot, error) {

	weekday, err := domain.Weekday(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	duration := domain.DefaultServiceDuration
	if in.ServiceID != "" {
		service, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		duration = service.DurationMin
	}

	if uc.respectDaysOff {
		off, err := uc.repo.HasDayOff(ctx, in.ProfessionalID, in.Date)
		if err != nil {
			return nil, err
		}
		if off {
			return []domain.Slot{}, nil
		}
	}

	day, err := uc.repo.GetScheduleDay(ctx, in.ProfessionalID, weekday)
	if err != nil || !day.IsWorking {
		// Not working that day is an empty answer, not an error.
		return []domain.Slot{}, nil
	}

	dayStart, err := domain.ParseClock(day.StartTime)
	if err != nil {
		return []domain.Slot{}, nil
	}
	dayEnd, err := domain.ParseClock(day.EndTime)
	if err != nil {
		return []domain.Slot{}, nil
	}

	booked, err := uc.repo.ListActiveAppointments(ctx, in.ProfessionalID, in.Date)
	if err != nil {
		return nil, err
	}

	return domain.BuildSlots(dayStart, dayEnd, duration, domain.BusyIntervals(booked)), nil
}
