package models

import "time"

// StaffMember mirrors the staff roster managed by the upstream identity
// service. It is read-only here; the permission middleware consults it.
type StaffMember struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex:idx_tenant_user" json:"tenant_id"`
	UserID   uint `gorm:"uniqueIndex:idx_tenant_user" json:"user_id"`

	Role string `gorm:"size:20" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
