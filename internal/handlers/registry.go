package handlers

import (
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/validator"
)

// AppHandlers groups every HTTP handler so route registration
// receives a single value.
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Program      *ProgramHandler
	Resource     *ResourceHandler
	Emergency    *EmergencyHandler
	Notification *NotificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.AuthService),
		Profile:      NewProfileHandler(base, sc.ProfileService),
		Program:      NewProgramHandler(base, sc.ProgramService, sc.ActionService),
		Resource:     NewResourceHandler(base, sc.ResourceService, sc.ActionService),
		Emergency:    NewEmergencyHandler(base, sc.EmergencyService, sc.ActionService),
		Notification: NewNotificationHandler(base, sc.FeedService),
	}
}
