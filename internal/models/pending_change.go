package models

import "time"

// PendingChange is a reschedule proposal under negotiation. The unique
// index keeps one open proposal per appointment.
type PendingChange struct {
	ID            uint `gorm:"primaryKey" json:"-"`
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"-"`

	ProposedDate   string `gorm:"size:10;not null" json:"proposed_date"`
	ProposedTime   string `gorm:"size:5" json:"proposed_time,omitempty"`
	ProposedEnd    string `gorm:"size:5" json:"proposed_end,omitempty"`
	ProposedPeriod string `gorm:"size:10" json:"proposed_period,omitempty"`

	Reason      string `gorm:"size:500;not null" json:"reason"`
	RequestedBy string `gorm:"size:10;not null" json:"requested_by"`
	RequesterID uint   `json:"requester_id"`

	// Schedule at the moment of the proposal, restored on rejection.
	PriorDate   string `gorm:"size:10" json:"-"`
	PriorStart  string `gorm:"size:5" json:"-"`
	PriorEnd    string `gorm:"size:5" json:"-"`
	PriorPeriod string `gorm:"size:10" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
