package models

// EmergencyRequest is an urgent, location-tagged help request. RequesterID is
// nullable: anonymous geolocated users can raise emergencies. HelperID is
// write-once; it is only ever set by the guarded claim update.
type EmergencyRequest struct {
	BaseModel
	RequesterID *string         `json:"requester_id"`
	ProgramID   *string         `json:"program_id"`
	Type        EmergencyType   `gorm:"not null" json:"type"`
	Lat         float64         `gorm:"not null" json:"lat"`
	Lng         float64         `gorm:"not null" json:"lng"`
	Address     string          `json:"address"` // reverse-geocoded, "Unknown location" on lookup failure
	Status      EmergencyStatus `gorm:"not null;default:pending;index" json:"status"`
	HelperID    *string         `json:"helper_id"`
}
