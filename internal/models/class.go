package models

import "time"

// ClassDefinition is a recurring class template; concrete occurrences are
// ClassSession rows.
type ClassDefinition struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"size:255" json:"description"`
	InstructorID uint   `json:"instructor_id"`

	MaxParticipants int    `gorm:"default:10" json:"max_participants"`
	DurationMin     int    `gorm:"default:60" json:"duration_min"`
	Location        string `gorm:"size:255" json:"location"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClassDefinition) TableName() string {
	return "classes"
}
