package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleDay is one row of a professional's weekly template. At most one
// row exists per (professional, day_of_week); 0 = Sunday .. 6 = Saturday.
type ScheduleDay struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID string `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_prof_day" json:"professional_id"`
	DayOfWeek      int    `gorm:"not null;uniqueIndex:idx_schedule_prof_day" json:"day_of_week"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsWorking bool   `gorm:"default:true" json:"is_working"`
}

func (s *ScheduleDay) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// DayOff is an inclusive date range a professional is away. Ranges may
// overlap and are never physically deleted; they expire when date_end passes.
type DayOff struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID string `gorm:"type:uuid;not null;index" json:"professional_id"`

	DateStart string `gorm:"size:10;not null" json:"date_start"`
	DateEnd   string `gorm:"size:10;not null" json:"date_end"`
	Reason    string `gorm:"size:255" json:"reason"`
}

func (d *DayOff) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
