package dto

import (
	"time"

	"reliefhub_backend/internal/models"
)

type CreateResourceRequestRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
	Urgency  string `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

type ResourceRequestResponse struct {
	ID            string                       `json:"id"`
	ProgramID     string                       `json:"program_id"`
	RequesterID   string                       `json:"requester_id"`
	RequesterName string                       `json:"requester_name,omitempty"`
	ItemName      string                       `json:"item_name"`
	Quantity      int                          `json:"quantity"`
	Urgency       string                       `json:"urgency"`
	Status        models.ResourceRequestStatus `json:"status"`
	AcceptedBy    *string                      `json:"accepted_by"`
	CreatedAt     time.Time                    `json:"created_at"`
}
