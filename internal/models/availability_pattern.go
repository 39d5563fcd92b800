package models

import "time"

// AvailabilityPattern is one recurring weekly availability window for a
// trainer. Times are stored as "15:04" strings in the business timezone.
type AvailabilityPattern struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TenantID  uint `gorm:"index" json:"tenant_id"`
	TrainerID uint `gorm:"index" json:"trainer_id"`

	DayOfWeek int `json:"day_of_week"`

	StartTime       string `gorm:"size:5" json:"start_time"`
	EndTime         string `gorm:"size:5" json:"end_time"`
	SlotDurationMin int    `gorm:"default:60" json:"slot_duration_min"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
