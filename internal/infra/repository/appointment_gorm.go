package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalon(
	ctx context.Context,
	id string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).First(&prof, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetClientByUser(
	ctx context.Context,
	userID string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetScheduleDay(
	ctx context.Context,
	professionalID string,
	dayOfWeek int,
) (*models.ScheduleDay, error) {

	var day models.ScheduleDay
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND day_of_week = ?", professionalID, dayOfWeek).
		First(&day).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *AppointmentGormRepository) HasDayOff(
	ctx context.Context,
	professionalID string,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DayOff{}).
		Where(
			"professional_id = ? AND date_start <= ? AND date_end >= ?",
			professionalID, date, date,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	professionalID string,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "scheduled_time", "duration_minutes", "status").
		Where(
			"professional_id = ? AND scheduled_date = ? AND status IN ?",
			professionalID, date, domain.NonTerminalStatuses(),
		).
		Order("scheduled_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// CreateIfSlotFree locks the professional's non-terminal appointments for
// the date, re-runs the overlap check, and inserts — all in one
// transaction. This is what closes the double-booking race.
func (r *AppointmentGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	candidate, err := domain.IntervalOf(ap.ScheduledTime, ap.DurationMin)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND scheduled_date = ? AND status IN ?",
				ap.ProfessionalID, ap.ScheduledDate, domain.NonTerminalStatuses(),
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.ConflictsWith(candidate, domain.BusyIntervals(existing)) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	candidate, err := domain.IntervalOf(ap.ScheduledTime, ap.DurationMin)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND scheduled_date = ? AND status IN ? AND id <> ?",
				ap.ProfessionalID, ap.ScheduledDate, domain.NonTerminalStatuses(), ap.ID,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.ConflictsWith(candidate, domain.BusyIntervals(existing)) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Save(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentDetail(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Professional").
		Preload("Client").
		Preload("Service").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Professional").
		Preload("Client").
		Preload("Service")

	if f.SalonID != "" {
		q = q.Where("salon_id = ?", f.SalonID)
	}
	if f.ProfessionalID != "" {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("scheduled_date = ?", f.Date)
	}
	if f.FromDate != "" {
		q = q.Where("scheduled_date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		q = q.Where("scheduled_date <= ?", f.ToDate)
	}

	var aps []models.Appointment
	if err := q.
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
