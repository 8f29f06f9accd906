package repositories

import (
	"errors"

	"reliefhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmergencyNotFound   = errors.New("emergency request not found")
	ErrEmergencyClaimed    = errors.New("emergency is already being helped")
	ErrEmergencyNotClaimed = errors.New("emergency is not in progress for this helper")
)

type EmergencyRepository interface {
	Create(emergency *models.EmergencyRequest) error
	FindByID(id string) (*models.EmergencyRequest, error)
	FindAll(status models.EmergencyStatus) ([]models.EmergencyRequest, error)

	// Claim sets helper_id and in_progress only while the row is still
	// pending and unassigned. Exactly one of any number of concurrent
	// claimers wins; losers get ErrEmergencyClaimed.
	Claim(emergencyID, helperID string) error

	// Complete finishes an in_progress emergency, and only for the helper
	// who claimed it.
	Complete(emergencyID, helperID string) error
}

type EmergencyRepositoryImpl struct {
	db *gorm.DB
}

func NewEmergencyRepository(db *gorm.DB) EmergencyRepository {
	return &EmergencyRepositoryImpl{db: db}
}

func (r *EmergencyRepositoryImpl) Create(emergency *models.EmergencyRequest) error {
	return r.db.Create(emergency).Error
}

func (r *EmergencyRepositoryImpl) FindByID(id string) (*models.EmergencyRequest, error) {
	var emergency models.EmergencyRequest
	err := r.db.First(&emergency, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmergencyNotFound
		}
		return nil, err
	}
	return &emergency, nil
}

func (r *EmergencyRepositoryImpl) FindAll(status models.EmergencyStatus) ([]models.EmergencyRequest, error) {
	var emergencies []models.EmergencyRequest
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&emergencies).Error
	return emergencies, err
}

func (r *EmergencyRepositoryImpl) Claim(emergencyID, helperID string) error {
	result := r.db.Model(&models.EmergencyRequest{}).
		Where("id = ? AND status = ? AND helper_id IS NULL",
			emergencyID, models.EmergencyStatusPending).
		Updates(map[string]interface{}{
			"status":    models.EmergencyStatusInProgress,
			"helper_id": helperID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(emergencyID); err != nil {
			return err
		}
		return ErrEmergencyClaimed
	}
	return nil
}

func (r *EmergencyRepositoryImpl) Complete(emergencyID, helperID string) error {
	result := r.db.Model(&models.EmergencyRequest{}).
		Where("id = ? AND status = ? AND helper_id = ?",
			emergencyID, models.EmergencyStatusInProgress, helperID).
		Update("status", models.EmergencyStatusCompleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(emergencyID); err != nil {
			return err
		}
		return ErrEmergencyNotClaimed
	}
	return nil
}
