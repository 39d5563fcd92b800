package models

import "time"

type Appointment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	ClientID  uint `gorm:"index" json:"client_id"`
	TrainerID uint `gorm:"index" json:"trainer_id"`

	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`

	AppointmentType string `gorm:"size:50;default:'training'" json:"appointment_type"`
	Location        string `gorm:"size:255" json:"location"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ExternalCalendarEventID string `gorm:"size:255" json:"external_calendar_event_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
