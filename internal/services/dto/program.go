package dto

import (
	"time"

	"reliefhub_backend/internal/models"
)

type CreateProgramRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	DisasterType   string   `json:"disaster_type" validate:"required"`
	Severity       string   `json:"severity" validate:"required,is-severity"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	LocationName   string   `json:"location_name" validate:"required"`
	MaxVolunteers  int      `json:"max_volunteers" validate:"min=0"`
	RequiredSkills []string `json:"required_skills"`
}

type UpdateProgramStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed paused"`
}

type ProgramResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	DisasterType   string               `json:"disaster_type"`
	Severity       models.SeverityLevel `json:"severity"`
	Lat            float64              `json:"lat"`
	Lng            float64              `json:"lng"`
	LocationName   string               `json:"location_name"`
	Status         models.ProgramStatus `json:"status"`
	CreatedBy      string               `json:"created_by"`
	CreatorName    string               `json:"creator_name,omitempty"`
	MaxVolunteers  int                  `json:"max_volunteers"`
	VolunteerCount int64                `json:"volunteer_count"`
	RequiredSkills []string             `json:"required_skills"`
	CreatedAt      time.Time            `json:"created_at"`
}
