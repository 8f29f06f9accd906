package models

import "gorm.io/datatypes"

// Profile is the public identity of a user. Profiles are never hard-deleted;
// notifications keep pointing at them for history.
type Profile struct {
	BaseModel
	UserID   string         `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName string         `gorm:"not null" json:"full_name"`
	Role     UserRole       `gorm:"not null;index" json:"role"`
	Phone    string         `json:"phone"`
	Skills   datatypes.JSON `gorm:"type:jsonb" json:"skills"` // ["medical", "rescue", ...]
}
