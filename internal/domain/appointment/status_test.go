package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

func TestTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
}

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, "cliente pediu", now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, "cliente pediu", ap.CancellationReason)

	// A salon may cancel even after the service started.
	ap = &models.Appointment{Status: string(StatusInProgress)}
	require.NoError(t, Cancel(ap, "imprevisto", now))

	// Re-cancelling is rejected and nothing changes.
	err := Cancel(ap, "de novo", now)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "already_cancelled"))
	assert.Equal(t, "imprevisto", ap.CancellationReason)

	// Missing reason is rejected before any guard runs.
	ap = &models.Appointment{Status: string(StatusScheduled)}
	err = Cancel(ap, "", now)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "missing_cancellation_reason"))
	assert.Equal(t, string(StatusScheduled), ap.Status)
}

func TestStartAndComplete(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Start(ap, now))
	assert.Equal(t, string(StatusInProgress), ap.Status)
	require.NotNil(t, ap.StartedAt)

	// Starting twice fails.
	err := Start(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	require.NoError(t, Complete(ap, "tudo certo", now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, "tudo certo", ap.ProfessionalNotes)
	require.NotNil(t, ap.CompletedAt)
}

func TestCompleteFastPath(t *testing.T) {
	// Scheduled straight to completed, without an explicit start.
	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Complete(ap, "", time.Now()))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Nil(t, ap.StartedAt)
}

func TestCompleteAfterCancelFails(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCancelled)}
	err := Complete(ap, "", time.Now())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Nil(t, ap.CompletedAt)
}

func TestReschedule(t *testing.T) {
	ap := &models.Appointment{
		Status:        string(StatusScheduled),
		ScheduledDate: "2026-09-01",
		ScheduledTime: "10:00",
	}
	require.NoError(t, Reschedule(ap, "2026-09-02", "11:00", time.Now()))
	assert.Equal(t, "2026-09-02", ap.ScheduledDate)
	assert.Equal(t, "11:00", ap.ScheduledTime)

	// Only scheduled appointments move.
	for _, s := range []Status{StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow} {
		ap := &models.Appointment{Status: string(s), ScheduledDate: "2026-09-01"}
		err := Reschedule(ap, "2026-09-02", "11:00", time.Now())
		require.Error(t, err, "status %s", s)
		assert.Equal(t, "2026-09-01", ap.ScheduledDate)
	}
}

func TestMarkNoShow(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusInProgress)}
	MarkNoShow(ap, time.Now())
	assert.Equal(t, string(StatusNoShow), ap.Status)
}
