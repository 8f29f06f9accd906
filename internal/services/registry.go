package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService      AuthService
	ProfileService   ProfileService
	ProgramService   ProgramService
	ResourceService  ResourceService
	EmergencyService EmergencyService
	DispatchService  DispatchService
	FeedService      FeedService
	ActionService    ActionService
}
