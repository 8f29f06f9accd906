package models

import "time"

// ResourceRequest is a call for a physical item scoped to a program.
// LastNotifiedAt is touched only by the reminder sweep; it doubles as the
// sweep's claim marker, so two concurrent sweeps cannot both re-notify the
// same request within a staleness window.
type ResourceRequest struct {
	BaseModel
	ProgramID      string                `gorm:"not null;index" json:"program_id"`
	RequesterID    string                `gorm:"not null" json:"requester_id"`
	ItemName       string                `gorm:"not null" json:"item_name"`
	Quantity       int                   `gorm:"default:1" json:"quantity"`
	Urgency        string                `gorm:"default:medium" json:"urgency"` // low|medium|high
	Status         ResourceRequestStatus `gorm:"not null;default:pending;index" json:"status"`
	AcceptedBy     *string               `json:"accepted_by"`
	LastNotifiedAt *time.Time            `json:"last_notified_at"`
}
