package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/realtime"
)

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, clientUser := seed(repo)
	disp := &fakeDispatcher{}
	uc := NewCreateAppointment(repo, disp)

	ap, err := uc.Execute(context.Background(), CreateInput{
		SalonID:         salonID,
		ProfessionalID:  proID,
		ServiceID:       serviceID,
		ScheduledDate:   "2026-09-01",
		ScheduledTime:   "10:00",
		ClientNotes:     "primeira vez",
		RequesterUserID: clientUser,
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, 40, ap.DurationMin, "duration stamped from the service")
	assert.Equal(t, 80.0, ap.Price, "price stamped from the service")
	assert.Equal(t, "client-1", ap.ClientID)

	events := disp.all()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventCreated, events[0].Name)
	assert.Equal(t, salonID, events[0].SalonID)
	assert.Empty(t, events[0].UserID, "creation does not target the client channel")

	require.Len(t, events[0].Notifications, 2)
	assert.Equal(t, "owner-1", events[0].Notifications[0].UserID)
	assert.Equal(t, "pro-user-1", events[0].Notifications[1].UserID)
}

func TestCreateAppointmentConflictLeavesFirstUntouched(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, clientUser := seed(repo)
	uc := NewCreateAppointment(repo, &fakeDispatcher{})

	base := CreateInput{
		SalonID:         salonID,
		ProfessionalID:  proID,
		ServiceID:       serviceID,
		ScheduledDate:   "2026-09-01",
		RequesterUserID: clientUser,
	}

	base.ScheduledTime = "10:00"
	first, err := uc.Execute(context.Background(), base)
	require.NoError(t, err)

	// 10:30 overlaps the 10:00–10:40 booking.
	base.ScheduledTime = "10:30"
	_, err = uc.Execute(context.Background(), base)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))

	stored, err := repo.GetAppointment(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", stored.ScheduledTime)
	assert.Equal(t, "scheduled", stored.Status)

	// The adjacent 10:40 start is fine.
	base.ScheduledTime = "10:40"
	_, err = uc.Execute(context.Background(), base)
	assert.NoError(t, err)
}

func TestCreateAppointmentConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, clientUser := seed(repo)
	uc := NewCreateAppointment(repo, &fakeDispatcher{})

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateInput{
				SalonID:         salonID,
				ProfessionalID:  proID,
				ServiceID:       serviceID,
				ScheduledDate:   "2026-09-01",
				ScheduledTime:   "14:00",
				RequesterUserID: clientUser,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent booking wins the slot")
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, clientUser := seed(repo)
	uc := NewCreateAppointment(repo, &fakeDispatcher{})

	base := CreateInput{
		SalonID:         salonID,
		ProfessionalID:  proID,
		ServiceID:       serviceID,
		ScheduledDate:   "2026-09-01",
		ScheduledTime:   "10:00",
		RequesterUserID: clientUser,
	}

	bad := base
	bad.ScheduledDate = "01/09/2026"
	_, err := uc.Execute(context.Background(), bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	bad = base
	bad.ScheduledTime = "25:00"
	_, err = uc.Execute(context.Background(), bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	bad = base
	bad.ServiceID = "nope"
	_, err = uc.Execute(context.Background(), bad)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	bad = base
	bad.SalonID = "nope"
	_, err = uc.Execute(context.Background(), bad)
	assert.True(t, httperr.IsBusiness(err, "salon_not_found"))

	bad = base
	bad.ProfessionalID = "nope"
	_, err = uc.Execute(context.Background(), bad)
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
}

func TestCreateAppointmentGuestClient(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, _ := seed(repo)
	uc := NewCreateAppointment(repo, &fakeDispatcher{})

	base := CreateInput{
		SalonID:         salonID,
		ProfessionalID:  proID,
		ServiceID:       serviceID,
		ScheduledDate:   "2026-09-01",
		ScheduledTime:   "15:00",
		RequesterUserID: "user-without-profile",
	}

	// No profile and no guest data.
	_, err := uc.Execute(context.Background(), base)
	assert.True(t, httperr.IsBusiness(err, "client_required"))

	base.ClientName = "Maria"
	base.ClientPhone = "11988887777"
	ap, err := uc.Execute(context.Background(), base)
	require.NoError(t, err)
	assert.NotEmpty(t, ap.ClientID)

	created, err := repo.GetClientByUser(context.Background(), "user-without-profile")
	require.NoError(t, err)
	assert.Equal(t, "Maria", created.Name)
}

func TestListAppointmentsFilter(t *testing.T) {
	repo := newFakeRepo()
	salonID, proID, serviceID, clientUser := seed(repo)
	uc := NewCreateAppointment(repo, &fakeDispatcher{})

	for _, tm := range []string{"09:00", "11:00", "13:00"} {
		_, err := uc.Execute(context.Background(), CreateInput{
			SalonID:         salonID,
			ProfessionalID:  proID,
			ServiceID:       serviceID,
			ScheduledDate:   "2026-09-01",
			ScheduledTime:   tm,
			RequesterUserID: clientUser,
		})
		require.NoError(t, err)
	}

	aps, err := repo.ListAppointments(context.Background(), domain.ListFilter{
		ProfessionalID: proID,
		Date:           "2026-09-01",
	})
	require.NoError(t, err)
	assert.Len(t, aps, 3)

	aps, err = repo.ListAppointments(context.Background(), domain.ListFilter{Date: "2026-09-02"})
	require.NoError(t, err)
	assert.Empty(t, aps)
}
