package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	SalonID string `gorm:"type:uuid;not null;index" json:"salon_id"`
	Salon   Salon  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	ProfessionalID string       `gorm:"type:uuid;not null;index" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ServiceID string  `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	ScheduledDate string `gorm:"size:10;not null;index" json:"scheduled_date"`
	ScheduledTime string `gorm:"size:5;not null" json:"scheduled_time"`

	// Stamped from the service at creation time. Later service edits do not
	// change booked appointments.
	DurationMin int     `gorm:"column:duration_minutes;not null" json:"duration_minutes"`
	Price       float64 `gorm:"not null" json:"price"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	ClientNotes       string `gorm:"size:500" json:"client_notes"`
	ProfessionalNotes string `gorm:"size:500" json:"professional_notes"`

	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
