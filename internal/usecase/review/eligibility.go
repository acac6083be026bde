package review

import (
	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

// Eligibility is the advisory result behind the can-review query. Each
// failing condition short-circuits with its own reason so the UI can explain
// exactly why the review button is disabled.
type Eligibility struct {
	CanReview bool   `json:"canReview"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonNotFound       = "appointment_not_found"
	ReasonNotOwner       = "not_your_appointment"
	ReasonNotCompleted   = "appointment_not_completed"
	ReasonAlreadyExists  = "already_reviewed"
)

// Check runs the gating conditions in order. ap may be nil (unresolved id);
// requesterUserID is the authenticated user, matched against the
// appointment's client record.
func Check(ap *models.Appointment, requesterUserID string, alreadyReviewed bool) Eligibility {
	if ap == nil {
		return Eligibility{Reason: ReasonNotFound}
	}
	if ap.Client.UserID != requesterUserID {
		return Eligibility{Reason: ReasonNotOwner}
	}
	if domain.Status(ap.Status) != domain.StatusCompleted {
		return Eligibility{Reason: ReasonNotCompleted}
	}
	if alreadyReviewed {
		return Eligibility{Reason: ReasonAlreadyExists}
	}
	return Eligibility{CanReview: true}
}
