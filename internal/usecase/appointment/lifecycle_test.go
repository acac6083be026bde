package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

func bookOne(t *testing.T, repo *fakeRepo, tm string) *models.Appointment {
	t.Helper()
	salonID, proID, serviceID, clientUser := "salon-1", "pro-1", "svc-1", "user-1"

	ap, err := NewCreateAppointment(repo, &fakeDispatcher{}).Execute(context.Background(), CreateInput{
		SalonID:         salonID,
		ProfessionalID:  proID,
		ServiceID:       serviceID,
		ScheduledDate:   "2026-09-01",
		ScheduledTime:   tm,
		RequesterUserID: clientUser,
	})
	require.NoError(t, err)
	return ap
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	ap := bookOne(t, repo, "10:00")

	disp := &fakeDispatcher{}
	uc := NewCancelAppointment(repo, disp)

	out, err := uc.Execute(context.Background(), ap.ID, "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)
	assert.Equal(t, "cliente desistiu", out.CancellationReason)

	events := disp.all()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventCancelled, events[0].Name)

	// Second cancel is a business rejection.
	_, err = uc.Execute(context.Background(), ap.ID, "de novo")
	assert.True(t, httperr.IsBusiness(err, "already_cancelled"))

	_, err = uc.Execute(context.Background(), "missing", "x")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestCancelledSlotBecomesBookable(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	ap := bookOne(t, repo, "10:00")

	_, err := NewCancelAppointment(repo, &fakeDispatcher{}).
		Execute(context.Background(), ap.ID, "desmarcou")
	require.NoError(t, err)

	// The freed interval accepts a new booking.
	bookOne(t, repo, "10:00")
}

func TestRescheduleAppointment(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	ap := bookOne(t, repo, "10:00")
	other := bookOne(t, repo, "12:00")

	disp := &fakeDispatcher{}
	uc := NewRescheduleAppointment(repo, disp)

	// Moving onto another booking fails and nothing moves.
	_, err := uc.Execute(context.Background(), ap.ID, "2026-09-01", "12:00")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "10:00", stored.ScheduledTime)

	// Re-booking the appointment's own slot succeeds: the conflict set
	// excludes its own id.
	_, err = uc.Execute(context.Background(), ap.ID, "2026-09-01", "10:00")
	require.NoError(t, err)

	// A genuinely free slot works as well.
	out, err := uc.Execute(context.Background(), ap.ID, "2026-09-01", "16:00")
	require.NoError(t, err)
	assert.Equal(t, "16:00", out.ScheduledTime)

	events := disp.all()
	require.Len(t, events, 2)
	assert.Equal(t, realtime.EventRescheduled, events[0].Name)

	// The other appointment never moved.
	stored, _ = repo.GetAppointment(context.Background(), other.ID)
	assert.Equal(t, "12:00", stored.ScheduledTime)
}

func TestStartThenComplete(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	ap := bookOne(t, repo, "10:00")

	disp := &fakeDispatcher{}

	out, err := NewStartAppointment(repo, disp).Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", out.Status)
	require.NotNil(t, out.StartedAt)

	out, err = NewCompleteAppointment(repo, disp).Execute(context.Background(), ap.ID, "sem atrasos")
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	require.NotNil(t, out.CompletedAt)
	assert.Equal(t, "sem atrasos", out.ProfessionalNotes)

	events := disp.all()
	require.Len(t, events, 2)
	assert.Equal(t, realtime.EventStarted, events[0].Name)
	assert.Equal(t, "user-1", events[0].UserID, "client channel included on start")
	assert.Equal(t, realtime.EventCompleted, events[1].Name)
	assert.Equal(t, "user-1", events[1].UserID)
}

func TestNoShow(t *testing.T) {
	repo := newFakeRepo()
	seed(repo)
	ap := bookOne(t, repo, "10:00")

	_, err := NewNoShowAppointment(repo).Execute(context.Background(), ap.ID)
	require.NoError(t, err)

	stored, _ := repo.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "no_show", stored.Status)

	// The vacated slot is free again.
	bookOne(t, repo, "10:00")

	_, err = NewNoShowAppointment(repo).Execute(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}
