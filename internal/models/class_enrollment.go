package models

import "time"

// ClassEnrollment links a client to a class session. A (session, client)
// pair has at most one row; cancelled rows are reused on re-enrollment.
type ClassEnrollment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SessionID uint `gorm:"column:class_session_id;uniqueIndex:idx_session_client" json:"session_id"`
	ClientID  uint `gorm:"uniqueIndex:idx_session_client" json:"client_id"`

	Status           string `gorm:"size:20;default:'enrolled'" json:"status"`
	WaitlistPosition *int   `json:"waitlist_position"`

	EnrolledAt  time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	CheckedInAt *time.Time `json:"checked_in_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
