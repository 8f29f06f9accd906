package dto

import (
	"time"

	"reliefhub_backend/internal/models"
)

type RaiseEmergencyRequest struct {
	Type string `json:"type" validate:"required,is-emergency-type"`
	// Pointers so 0 (equator, prime meridian) passes required.
	Lat       *float64 `json:"lat" validate:"required,latitude"`
	Lng       *float64 `json:"lng" validate:"required,longitude"`
	ProgramID *string  `json:"program_id"`
}

type EmergencyResponse struct {
	ID         string                 `json:"id"`
	Type       models.EmergencyType   `json:"type"`
	Lat        float64                `json:"lat"`
	Lng        float64                `json:"lng"`
	Address    string                 `json:"address"`
	ProgramID  *string                `json:"program_id"`
	Status     models.EmergencyStatus `json:"status"`
	HelperID   *string                `json:"helper_id"`
	HelperName string                 `json:"helper_name,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
