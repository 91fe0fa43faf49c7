package models

import "time"

type IncidentReport struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	StudioID      uint   `gorm:"index" json:"studio_id"`
	AppointmentID uint   `gorm:"index;not null" json:"appointment_id"`
	ReporterID    uint   `json:"reporter_id"`
	ReporterRole  string `gorm:"size:20" json:"reporter_role"`
	Category      string `gorm:"size:50;not null" json:"category"`
	Note          string `gorm:"size:1000" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}
