package models

type UserRole string
type SeverityLevel string
type ProgramStatus string
type ResourceRequestStatus string
type EmergencyType string
type EmergencyStatus string

const (
	UserRoleVolunteer UserRole = "volunteer"
	UserRoleNGO       UserRole = "ngo"

	SeverityRed    SeverityLevel = "red"
	SeverityOrange SeverityLevel = "orange"
	SeverityYellow SeverityLevel = "yellow"

	ProgramStatusActive    ProgramStatus = "active"
	ProgramStatusCompleted ProgramStatus = "completed"
	ProgramStatusPaused    ProgramStatus = "paused"

	// Resource requests advance monotonically pending -> providing -> completed.
	ResourceStatusPending   ResourceRequestStatus = "pending"
	ResourceStatusProviding ResourceRequestStatus = "providing"
	ResourceStatusCompleted ResourceRequestStatus = "completed"

	EmergencyMedical    EmergencyType = "medical"
	EmergencyTrapped    EmergencyType = "trapped"
	EmergencyEvacuation EmergencyType = "evacuation"
	EmergencyFood       EmergencyType = "food"
	EmergencyOther      EmergencyType = "other"

	EmergencyStatusPending    EmergencyStatus = "pending"
	EmergencyStatusInProgress EmergencyStatus = "in_progress"
	EmergencyStatusCompleted  EmergencyStatus = "completed"
)
