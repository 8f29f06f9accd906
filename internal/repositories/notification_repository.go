package repositories

import (
	"errors"
	"fmt"

	"reliefhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateBulk(notifications []*models.Notification) error
	FindByID(id string) (*models.Notification, error)

	// FindUserNotifications returns the user's rows newest-first, optionally
	// narrowed to one notification type.
	FindUserNotifications(userID string, typeFilter models.NotificationType) ([]models.Notification, error)
	CountForUser(userID string) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulk(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	for _, notification := range notifications {
		if err := r.validateNotification(notification); err != nil {
			return err
		}
	}

	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, typeFilter models.NotificationType) ([]models.Notification, error) {
	var notifications []models.Notification
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	err := q.Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountForUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// validateNotification enforces the tagged-union discipline: the reference
// column set must match the type tag, and exactly one must be set.
func (r *NotificationRepositoryImpl) validateNotification(n *models.Notification) error {
	if n.UserID == "" || n.Message == "" {
		return ErrInvalidNotificationData
	}

	refs := 0
	if n.ProgramID != nil {
		refs++
	}
	if n.ResourceRequestID != nil {
		refs++
	}
	if n.EmergencyID != nil {
		refs++
	}
	if refs != 1 {
		return fmt.Errorf("%w: notification must reference exactly one entity, got %d", ErrInvalidNotificationData, refs)
	}

	switch n.Type {
	case models.NotificationProgramAlert:
		if n.ProgramID == nil {
			return fmt.Errorf("%w: program_alert requires program_id", ErrInvalidNotificationData)
		}
	case models.NotificationResourceRequest:
		if n.ResourceRequestID == nil {
			return fmt.Errorf("%w: resource_request requires resource_request_id", ErrInvalidNotificationData)
		}
	case models.NotificationEmergency:
		if n.EmergencyID == nil {
			return fmt.Errorf("%w: emergency requires emergency_id", ErrInvalidNotificationData)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidNotificationData, n.Type)
	}

	return nil
}
