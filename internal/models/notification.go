package models

// Notification types. The type tag decides which reference column is set.
type NotificationType string

const (
	NotificationProgramAlert    NotificationType = "program_alert"
	NotificationResourceRequest NotificationType = "resource_request"
	NotificationEmergency       NotificationType = "emergency"
)

// Notification is an immutable record of one domain event delivered to one
// user. Exactly one of ProgramID / ResourceRequestID / EmergencyID is set,
// matching Type. Rows are never updated after insert; the joined/ended/helper
// state a card shows is derived at read time by the feed service.
type Notification struct {
	BaseModel
	UserID            string           `gorm:"not null;index" json:"user_id"`
	Type              NotificationType `gorm:"not null" json:"type"`
	Message           string           `gorm:"not null" json:"message"`
	ProgramID         *string          `json:"program_id"`
	ResourceRequestID *string          `json:"resource_request_id"`
	EmergencyID       *string          `json:"emergency_id"`
}
