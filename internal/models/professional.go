package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Professional struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	SalonID string `gorm:"type:uuid;not null;index" json:"salon_id"`
	Salon   Salon  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name                 string  `gorm:"size:100;not null" json:"name"`
	Specialty            string  `gorm:"size:100" json:"specialty"`
	Bio                  string  `gorm:"size:500" json:"bio"`
	PhotoURL             string  `gorm:"size:255" json:"photo_url"`
	CommissionPercentage float64 `gorm:"default:50" json:"commission_percentage"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Services []Service `gorm:"many2many:professional_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
