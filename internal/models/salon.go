package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerID string `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Address   string `gorm:"size:255;not null" json:"address"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	Instagram string `gorm:"size:100" json:"instagram"`
	Whatsapp  string `gorm:"size:20" json:"whatsapp"`

	OpeningHours string `gorm:"size:5;default:'09:00'" json:"opening_hours"`
	ClosingHours string `gorm:"size:5;default:'19:00'" json:"closing_hours"`

	LogoURL       string `gorm:"size:255" json:"logo_url"`
	CoverPhotoURL string `gorm:"size:255" json:"cover_photo_url"`
	Bio           string `gorm:"size:500" json:"bio"`
	Niche         string `gorm:"size:20;default:'barbershop'" json:"niche"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
