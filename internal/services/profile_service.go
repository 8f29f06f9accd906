package services

import (
	"context"
	"encoding/json"
	"errors"

	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]dto.ProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildProfileResponse(profile), nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	if raw, err := json.Marshal(req.Skills); err == nil {
		profile.Skills = datatypes.JSON(raw)
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildProfileResponse(profile), nil
}

func (s *profileService) ListByRole(ctx context.Context, role models.UserRole) ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.FindByRole(role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *buildProfileResponse(&profiles[i]))
	}
	return responses, nil
}

func buildProfileResponse(profile *models.Profile) *dto.ProfileResponse {
	var skills []string
	if len(profile.Skills) > 0 {
		_ = json.Unmarshal(profile.Skills, &skills)
	}
	return &dto.ProfileResponse{
		ID:       profile.ID,
		UserID:   profile.UserID,
		FullName: profile.FullName,
		Role:     profile.Role,
		Phone:    profile.Phone,
		Skills:   skills,
	}
}
