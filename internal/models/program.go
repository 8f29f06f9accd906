package models

import "gorm.io/datatypes"

// Program is an NGO-run relief effort volunteers can join. The only mutation
// after creation is the status transition active -> completed|paused.
type Program struct {
	BaseModel
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	DisasterType   string         `gorm:"not null" json:"disaster_type"`
	Severity       SeverityLevel  `gorm:"not null" json:"severity"`
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	LocationName   string         `json:"location_name"`
	Status         ProgramStatus  `gorm:"not null;default:active;index" json:"status"`
	CreatedBy      string         `gorm:"not null;index" json:"created_by"`
	MaxVolunteers  int            `json:"max_volunteers"`
	RequiredSkills datatypes.JSON `gorm:"type:jsonb" json:"required_skills"`
}

// ProgramMembership links a volunteer to a program. Insert-only; the composite
// unique index is what makes join idempotent under concurrent clicks.
type ProgramMembership struct {
	BaseModel
	ProgramID   string `gorm:"not null;uniqueIndex:idx_program_volunteer" json:"program_id"`
	VolunteerID string `gorm:"not null;uniqueIndex:idx_program_volunteer;index" json:"volunteer_id"`
}
