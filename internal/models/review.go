package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID string `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`

	ClientID string `gorm:"type:uuid;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ProfessionalID string `gorm:"type:uuid;not null;index" json:"professional_id"`
	SalonID        string `gorm:"type:uuid;not null;index" json:"salon_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
