package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudioID uint `gorm:"index" json:"studio_id"`

	ClientID uint `gorm:"index;not null" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ArtistID uint `gorm:"index:idx_appointments_artist_date;not null" json:"artist_id"`
	Artist   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Service string `gorm:"size:255;not null" json:"service"`

	ScheduledDate string `gorm:"size:10;index:idx_appointments_artist_date;not null" json:"scheduled_date"`
	StartTime     string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime       string `gorm:"size:5" json:"end_time,omitempty"`
	Period        string `gorm:"size:10" json:"period,omitempty"`

	Status string `gorm:"size:20;index;not null" json:"status"`

	// Version grows by one on every committed update.
	Version int64 `gorm:"not null;default:0" json:"-"`

	PriceCents     int64 `gorm:"not null;default:0" json:"price_cents"`
	DepositCents   int64 `gorm:"not null;default:0" json:"deposit_cents"`
	RemainingCents int64 `gorm:"not null;default:0" json:"remaining_cents"`

	// Present only while Status is rescheduling.
	PendingChange *PendingChange `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pending_change,omitempty"`

	TerminalReasonCode string `gorm:"size:50" json:"terminal_reason_code,omitempty"`
	TerminalReason     string `gorm:"size:500" json:"terminal_reason,omitempty"`

	Notes string `gorm:"size:2000" json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no pointers with ap.
func (ap *Appointment) Clone() *Appointment {
	cp := *ap
	if ap.PendingChange != nil {
		pc := *ap.PendingChange
		cp.PendingChange = &pc
	}
	cp.CancelledAt = cloneTime(ap.CancelledAt)
	cp.StartedAt = cloneTime(ap.StartedAt)
	cp.CompletedAt = cloneTime(ap.CompletedAt)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
