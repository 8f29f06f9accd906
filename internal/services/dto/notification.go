package dto

import (
	"time"

	"reliefhub_backend/internal/models"
)

// FeedItem is one enriched notification card. Exactly one of the variant
// payloads is non-nil, matching Type; the rest of the card is derived at
// read time from the referenced entity's current state.
type FeedItem struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Message   string                  `json:"message"`
	CreatedAt time.Time               `json:"created_at"`

	ProgramAlert    *ProgramAlertItem    `json:"program_alert,omitempty"`
	ResourceRequest *ResourceRequestItem `json:"resource_request,omitempty"`
	Emergency       *EmergencyItem       `json:"emergency,omitempty"`
}

// ProgramAlertItem drives the join-program card. Ended and Joined are live
// state, re-derived on every feed read. A deleted program renders with
// Ended=true and no creator.
type ProgramAlertItem struct {
	ProgramID   string `json:"program_id"`
	Title       string `json:"title,omitempty"`
	CreatorName string `json:"creator_name,omitempty"`
	CreatorRole string `json:"creator_role,omitempty"`
	Ended       bool   `json:"ended"`
	Joined      bool   `json:"joined"`
}

// ResourceRequestItem drives the accept/complete-request card.
type ResourceRequestItem struct {
	RequestID  string                       `json:"request_id"`
	ProgramID  string                       `json:"program_id,omitempty"`
	ItemName   string                       `json:"item_name,omitempty"`
	Status     models.ResourceRequestStatus `json:"status,omitempty"`
	AcceptedBy *string                      `json:"accepted_by,omitempty"`
	Missing    bool                         `json:"missing,omitempty"`
}

// EmergencyItem drives the I-will-help card. HelperName lets other viewers
// see who is already helping.
type EmergencyItem struct {
	EmergencyID string                 `json:"emergency_id"`
	Type        models.EmergencyType   `json:"type,omitempty"`
	Address     string                 `json:"address,omitempty"`
	Status      models.EmergencyStatus `json:"status,omitempty"`
	HelperID    *string                `json:"helper_id,omitempty"`
	HelperName  string                 `json:"helper_name,omitempty"`
	Missing     bool                   `json:"missing,omitempty"`
}

// FeedFilter is the client-selected type filter over the feed.
type FeedFilter string

const (
	FeedFilterAll             FeedFilter = "all"
	FeedFilterProgramAlert    FeedFilter = "program_alert"
	FeedFilterProgram         FeedFilter = "program" // shorthand for program_alert
	FeedFilterResourceRequest FeedFilter = "resource_request"
	FeedFilterEmergency       FeedFilter = "emergency"
)
