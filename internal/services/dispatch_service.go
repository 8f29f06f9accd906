package services

import (
	"context"
	"fmt"
	"strings"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
)

// Notifier is the real-time push side of dispatch. The ws hub implements it;
// tests plug in a recorder.
type Notifier interface {
	NotifyUser(userID string, payload any)
}

// DispatchService turns domain events into notification rows, one per
// recipient. Fan-out is a side effect of the triggering write, not part of
// it: the caller's entity is already persisted when dispatch runs, and a
// dispatch failure never rolls it back. Delivery is at-least-once.
type DispatchService interface {
	ProgramCreated(ctx context.Context, program *models.Program) error
	ResourceRequested(ctx context.Context, request *models.ResourceRequest) error
	EmergencyRaised(ctx context.Context, emergency *models.EmergencyRequest) error
	ReminderDue(ctx context.Context, request *models.ResourceRequest) error
}

type dispatchService struct {
	notificationRepo repositories.NotificationRepository
	profileRepo      repositories.ProfileRepository
	programRepo      repositories.ProgramRepository
	notifier         Notifier
}

func NewDispatchService(
	notificationRepo repositories.NotificationRepository,
	profileRepo repositories.ProfileRepository,
	programRepo repositories.ProgramRepository,
	notifier Notifier,
) DispatchService {
	return &dispatchService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		programRepo:      programRepo,
		notifier:         notifier,
	}
}

// ProgramCreated broadcasts a program_alert to the whole volunteer pool.
// No geographic or skill filtering; volunteers decide for themselves.
func (s *dispatchService) ProgramCreated(ctx context.Context, program *models.Program) error {
	recipients, err := s.profileRepo.FindIDsByRole(models.UserRoleVolunteer)
	if err != nil {
		logger.CtxWithError(ctx, "program_alert recipient query failed", err, "program_id", program.ID)
		return err
	}

	message := fmt.Sprintf("New %s relief program: %s",
		strings.ToUpper(program.DisasterType), program.Title)

	notifications := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, &models.Notification{
			UserID:    userID,
			Type:      models.NotificationProgramAlert,
			Message:   message,
			ProgramID: &program.ID,
		})
	}

	return s.deliver(ctx, notifications)
}

// ResourceRequested notifies the program's current members, excluding the
// requester. Self-exclusion is deliberate: the requester already knows.
func (s *dispatchService) ResourceRequested(ctx context.Context, request *models.ResourceRequest) error {
	return s.fanOutToMembers(ctx, request, false)
}

// ReminderDue re-notifies members of a still-pending request. Same recipient
// rule as ResourceRequested.
func (s *dispatchService) ReminderDue(ctx context.Context, request *models.ResourceRequest) error {
	return s.fanOutToMembers(ctx, request, true)
}

func (s *dispatchService) fanOutToMembers(ctx context.Context, request *models.ResourceRequest, reminder bool) error {
	memberIDs, err := s.programRepo.FindMemberIDs(request.ProgramID)
	if err != nil {
		logger.CtxWithError(ctx, "resource_request recipient query failed", err, "request_id", request.ID)
		return err
	}

	programTitle := "a relief program"
	if program, err := s.programRepo.FindByID(request.ProgramID); err == nil {
		programTitle = program.Title
	}

	var message string
	if reminder {
		message = fmt.Sprintf("Still needed: %s (x%d) for %s", request.ItemName, request.Quantity, programTitle)
	} else {
		message = fmt.Sprintf("Resource needed: %s (x%d) for %s", request.ItemName, request.Quantity, programTitle)
	}

	notifications := make([]*models.Notification, 0, len(memberIDs))
	for _, userID := range memberIDs {
		if userID == request.RequesterID {
			continue
		}
		notifications = append(notifications, &models.Notification{
			UserID:            userID,
			Type:              models.NotificationResourceRequest,
			Message:           message,
			ResourceRequestID: &request.ID,
		})
	}

	return s.deliver(ctx, notifications)
}

// EmergencyRaised broadcasts to every profile. The address was already
// resolved (or fell back) by the emergency service; this path never does
// network lookups of its own.
func (s *dispatchService) EmergencyRaised(ctx context.Context, emergency *models.EmergencyRequest) error {
	recipients, err := s.profileRepo.FindAllIDs()
	if err != nil {
		logger.CtxWithError(ctx, "emergency recipient query failed", err, "emergency_id", emergency.ID)
		return err
	}

	message := fmt.Sprintf("🚨 %s emergency at %s",
		strings.ToUpper(string(emergency.Type)), emergency.Address)

	notifications := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, &models.Notification{
			UserID:      userID,
			Type:        models.NotificationEmergency,
			Message:     message,
			EmergencyID: &emergency.ID,
		})
	}

	return s.deliver(ctx, notifications)
}

// deliver persists the batch, then pushes each row to connected recipients.
// Push failures are invisible here: the row is already durable and will be
// picked up by the recipient's next feed poll.
func (s *dispatchService) deliver(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	if err := s.notificationRepo.CreateBulk(notifications); err != nil {
		logger.CtxWithError(ctx, "notification fan-out insert failed", err, "count", len(notifications))
		return err
	}

	if s.notifier != nil {
		for _, n := range notifications {
			s.notifier.NotifyUser(n.UserID, n)
		}
	}

	logger.CtxInfo(ctx, "notifications dispatched", "count", len(notifications), "type", notifications[0].Type)
	return nil
}
