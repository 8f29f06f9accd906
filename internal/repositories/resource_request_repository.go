package repositories

import (
	"errors"
	"time"

	"reliefhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrResourceRequestNotFound = errors.New("resource request not found")
	ErrRequestNotPending       = errors.New("resource request is not pending")
	ErrRequestNotProviding     = errors.New("resource request is not being provided by this user")
)

type ResourceRequestRepository interface {
	Create(request *models.ResourceRequest) error
	FindByID(id string) (*models.ResourceRequest, error)
	FindByProgram(programID string) ([]models.ResourceRequest, error)

	// Accept and Complete are compare-and-set updates: the WHERE clause
	// carries the expected prior state and zero affected rows means a
	// concurrent actor got there first.
	Accept(requestID, providerID string) error
	Complete(requestID, providerID string) error

	// Reminder sweep support. FindStale lists pending requests whose last
	// notification (or creation, if never notified) predates the cutoff.
	// ClaimForReminder advances last_notified_at under the same staleness
	// guard, so a concurrent sweep observes the request as fresh.
	FindStale(cutoff time.Time) ([]models.ResourceRequest, error)
	ClaimForReminder(requestID string, cutoff, now time.Time) (bool, error)
}

type ResourceRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewResourceRequestRepository(db *gorm.DB) ResourceRequestRepository {
	return &ResourceRequestRepositoryImpl{db: db}
}

func (r *ResourceRequestRepositoryImpl) Create(request *models.ResourceRequest) error {
	return r.db.Create(request).Error
}

func (r *ResourceRequestRepositoryImpl) FindByID(id string) (*models.ResourceRequest, error) {
	var request models.ResourceRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ResourceRequestRepositoryImpl) FindByProgram(programID string) ([]models.ResourceRequest, error) {
	var requests []models.ResourceRequest
	err := r.db.Where("program_id = ?", programID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *ResourceRequestRepositoryImpl) Accept(requestID, providerID string) error {
	result := r.db.Model(&models.ResourceRequest{}).
		Where("id = ? AND status = ?", requestID, models.ResourceStatusPending).
		Updates(map[string]interface{}{
			"status":      models.ResourceStatusProviding,
			"accepted_by": providerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(requestID); err != nil {
			return err
		}
		return ErrRequestNotPending
	}
	return nil
}

func (r *ResourceRequestRepositoryImpl) Complete(requestID, providerID string) error {
	result := r.db.Model(&models.ResourceRequest{}).
		Where("id = ? AND status = ? AND accepted_by = ?",
			requestID, models.ResourceStatusProviding, providerID).
		Update("status", models.ResourceStatusCompleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(requestID); err != nil {
			return err
		}
		return ErrRequestNotProviding
	}
	return nil
}

func (r *ResourceRequestRepositoryImpl) FindStale(cutoff time.Time) ([]models.ResourceRequest, error) {
	var requests []models.ResourceRequest
	err := r.db.
		Where("status = ?", models.ResourceStatusPending).
		Where("COALESCE(last_notified_at, created_at) <= ?", cutoff).
		Find(&requests).Error
	return requests, err
}

func (r *ResourceRequestRepositoryImpl) ClaimForReminder(requestID string, cutoff, now time.Time) (bool, error) {
	result := r.db.Model(&models.ResourceRequest{}).
		Where("id = ? AND status = ?", requestID, models.ResourceStatusPending).
		Where("COALESCE(last_notified_at, created_at) <= ?", cutoff).
		Update("last_notified_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
