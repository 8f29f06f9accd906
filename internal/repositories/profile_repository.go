package repositories

import (
	"errors"

	"reliefhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByID(id string) (*models.Profile, error)
	FindByUserID(userID string) (*models.Profile, error)
	Update(profile *models.Profile) error
	FindByRole(role models.UserRole) ([]models.Profile, error)
	FindAll() ([]models.Profile, error)

	// Recipient-set queries for the dispatcher. ID-only projections: fan-out
	// does not need full profiles.
	FindIDsByRole(role models.UserRole) ([]string, error)
	FindAllIDs() ([]string, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	err := r.db.Create(profile).Error
	if err != nil && isUniqueViolation(err) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	return r.db.Model(profile).Updates(map[string]interface{}{
		"full_name": profile.FullName,
		"phone":     profile.Phone,
		"skills":    profile.Skills,
	}).Error
}

func (r *ProfileRepositoryImpl) FindByRole(role models.UserRole) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("role = ?", role).Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) FindAll() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) FindIDsByRole(role models.UserRole) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Profile{}).Where("role = ?", role).Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ProfileRepositoryImpl) FindAllIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Profile{}).Pluck("user_id", &ids).Error
	return ids, err
}
