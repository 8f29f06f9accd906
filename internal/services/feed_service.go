package services

import (
	"context"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
)

// FeedService builds the per-user notification read model. It is read-only
// and safe to poll: every call re-derives joined/ended/helper state from the
// referenced entities, because notification rows themselves never change.
type FeedService interface {
	GetFeed(ctx context.Context, userID string, filter dto.FeedFilter) ([]dto.FeedItem, error)
}

type feedService struct {
	notificationRepo repositories.NotificationRepository
	programRepo      repositories.ProgramRepository
	resourceRepo     repositories.ResourceRequestRepository
	emergencyRepo    repositories.EmergencyRepository
	profileRepo      repositories.ProfileRepository
}

func NewFeedService(
	notificationRepo repositories.NotificationRepository,
	programRepo repositories.ProgramRepository,
	resourceRepo repositories.ResourceRequestRepository,
	emergencyRepo repositories.EmergencyRepository,
	profileRepo repositories.ProfileRepository,
) FeedService {
	return &feedService{
		notificationRepo: notificationRepo,
		programRepo:      programRepo,
		resourceRepo:     resourceRepo,
		emergencyRepo:    emergencyRepo,
		profileRepo:      profileRepo,
	}
}

func filterToType(filter dto.FeedFilter) models.NotificationType {
	switch filter {
	case dto.FeedFilterProgramAlert, dto.FeedFilterProgram:
		return models.NotificationProgramAlert
	case dto.FeedFilterResourceRequest:
		return models.NotificationResourceRequest
	case dto.FeedFilterEmergency:
		return models.NotificationEmergency
	default:
		return ""
	}
}

// GetFeed returns the user's notifications newest-first, each enriched with
// the current state of its referent. A missing referent degrades the card
// rather than failing the feed.
func (s *feedService) GetFeed(ctx context.Context, userID string, filter dto.FeedFilter) ([]dto.FeedItem, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(userID, filterToType(filter))
	if err != nil {
		return nil, err
	}

	items := make([]dto.FeedItem, 0, len(notifications))
	for i := range notifications {
		// Navigating away cancels the request context; stop enriching so a
		// stale result set is never handed to a newer render.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := &notifications[i]
		item := dto.FeedItem{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}

		switch n.Type {
		case models.NotificationProgramAlert:
			item.ProgramAlert = s.enrichProgramAlert(ctx, n, userID)
		case models.NotificationResourceRequest:
			item.ResourceRequest = s.enrichResourceRequest(ctx, n)
		case models.NotificationEmergency:
			item.Emergency = s.enrichEmergency(ctx, n)
		default:
			// Unknown rows are rendered from the message alone.
			logger.CtxWarn(ctx, "notification with unknown type in feed", "id", n.ID, "type", n.Type)
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *feedService) enrichProgramAlert(ctx context.Context, n *models.Notification, userID string) *dto.ProgramAlertItem {
	if n.ProgramID == nil {
		return &dto.ProgramAlertItem{Ended: true}
	}

	item := &dto.ProgramAlertItem{ProgramID: *n.ProgramID}

	program, err := s.programRepo.FindByID(*n.ProgramID)
	if err != nil {
		// Deleted program: degraded card, join closed.
		item.Ended = true
		return item
	}

	item.Title = program.Title
	item.Ended = program.Status != models.ProgramStatusActive

	if creator, err := s.profileRepo.FindByUserID(program.CreatedBy); err == nil {
		item.CreatorName = creator.FullName
		item.CreatorRole = string(creator.Role)
	}

	joined, err := s.programRepo.MembershipExists(*n.ProgramID, userID)
	if err != nil {
		logger.CtxWithError(ctx, "membership check failed during enrichment", err, "program_id", *n.ProgramID)
	}
	item.Joined = joined

	return item
}

func (s *feedService) enrichResourceRequest(ctx context.Context, n *models.Notification) *dto.ResourceRequestItem {
	if n.ResourceRequestID == nil {
		return &dto.ResourceRequestItem{Missing: true}
	}

	item := &dto.ResourceRequestItem{RequestID: *n.ResourceRequestID}

	request, err := s.resourceRepo.FindByID(*n.ResourceRequestID)
	if err != nil {
		item.Missing = true
		return item
	}

	item.ProgramID = request.ProgramID
	item.ItemName = request.ItemName
	item.Status = request.Status
	item.AcceptedBy = request.AcceptedBy
	return item
}

func (s *feedService) enrichEmergency(ctx context.Context, n *models.Notification) *dto.EmergencyItem {
	if n.EmergencyID == nil {
		return &dto.EmergencyItem{Missing: true}
	}

	item := &dto.EmergencyItem{EmergencyID: *n.EmergencyID}

	emergency, err := s.emergencyRepo.FindByID(*n.EmergencyID)
	if err != nil {
		item.Missing = true
		return item
	}

	item.Type = emergency.Type
	item.Address = emergency.Address
	item.Status = emergency.Status
	item.HelperID = emergency.HelperID

	if emergency.HelperID != nil {
		if helper, err := s.profileRepo.FindByUserID(*emergency.HelperID); err == nil {
			item.HelperName = helper.FullName
		}
	}

	return item
}
