package appointment

import (
	"time"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Terminal statuses never change again and never block a time slot.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func InitialStatus() Status {
	return StatusScheduled
}

// NonTerminalStatuses is the obstacle set for conflict queries.
func NonTerminalStatuses() []string {
	return []string{string(StatusScheduled), string(StatusInProgress)}
}

// ===============================
// Transition guards
// ===============================

// CanCancel only rejects re-cancelling; a salon may cancel even after the
// service started.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}

func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete allows the fast path: a scheduled appointment may be completed
// without being started first.
func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// ===============================
// Domain actions
// ===============================

// Each action validates first and mutates only on success, so a rejected
// transition leaves the appointment untouched.

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if reason == "" {
		return httperr.ErrBusiness("missing_cancellation_reason")
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancellationReason = reason
	ap.UpdatedAt = now
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, professionalNotes string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	if professionalNotes != "" {
		ap.ProfessionalNotes = professionalNotes
	}
	ap.UpdatedAt = now
	return nil
}

// MarkNoShow has no status precondition beyond existence, mirroring the
// walk-in reality it records.
func MarkNoShow(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusNoShow)
	ap.UpdatedAt = now
}

func Reschedule(ap *models.Appointment, newDate, newTime string, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.ScheduledDate = newDate
	ap.ScheduledTime = newTime
	ap.UpdatedAt = now
	return nil
}
