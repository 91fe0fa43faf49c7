package models

import "time"

// AppointmentStatusEvent is one row of an appointment's status history.
type AppointmentStatusEvent struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID uint   `gorm:"index;not null" json:"appointment_id"`
	FromStatus    string `gorm:"size:20" json:"from_status"`
	ToStatus      string `gorm:"size:20;not null" json:"to_status"`
	Action        string `gorm:"size:30;not null" json:"action"`
	ActorID       uint   `json:"actor_id"`
	ActorRole     string `gorm:"size:20" json:"actor_role"`

	CreatedAt time.Time `json:"created_at"`
}
