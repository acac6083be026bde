package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/models"
	ucReview "github.com/bellagenda/salon-scheduler/internal/usecase/review"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetAppointmentWithClient(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ReviewGormRepository) HasReview(
	ctx context.Context,
	appointmentID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateReview keeps the denormalized rating aggregates on the professional
// and salon rows consistent with the reviews table inside one transaction.
func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}

		if err := recomputeRating(tx, "professional_id", rv.ProfessionalID, &models.Professional{}); err != nil {
			return err
		}
		return recomputeRating(tx, "salon_id", rv.SalonID, &models.Salon{})
	})
}

func recomputeRating(tx *gorm.DB, column, id string, target any) error {
	var agg struct {
		Avg   float64
		Count int
	}
	if err := tx.
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where(column+" = ?", id).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.
		Model(target).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": agg.Avg,
			"total_reviews":  agg.Count,
		}).Error
}

var _ ucReview.Repository = (*ReviewGormRepository)(nil)
