package models

import "time"

type ClassSession struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	ClassID uint            `gorm:"index" json:"class_id"`
	Class   ClassDefinition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"class"`

	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
