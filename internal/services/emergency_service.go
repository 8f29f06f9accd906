package services

import (
	"context"
	"errors"

	"reliefhub_backend/internal/geocode"
	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/pkg/apperrors"
)

type EmergencyService interface {
	// Raise accepts anonymous callers: requesterID may be "".
	Raise(ctx context.Context, requesterID string, req *dto.RaiseEmergencyRequest) (*dto.EmergencyResponse, error)
	Get(ctx context.Context, emergencyID string) (*dto.EmergencyResponse, error)
	List(ctx context.Context, status models.EmergencyStatus) ([]dto.EmergencyResponse, error)
}

type emergencyService struct {
	emergencyRepo repositories.EmergencyRepository
	profileRepo   repositories.ProfileRepository
	resolver      geocode.Resolver
	dispatch      DispatchService
}

func NewEmergencyService(
	emergencyRepo repositories.EmergencyRepository,
	profileRepo repositories.ProfileRepository,
	resolver geocode.Resolver,
	dispatch DispatchService,
) EmergencyService {
	return &emergencyService{
		emergencyRepo: emergencyRepo,
		profileRepo:   profileRepo,
		resolver:      resolver,
		dispatch:      dispatch,
	}
}

// Raise resolves the address best-effort, persists the emergency, then
// broadcasts it. Geocoding can only degrade the message, never block or
// fail the emergency itself.
func (s *emergencyService) Raise(ctx context.Context, requesterID string, req *dto.RaiseEmergencyRequest) (*dto.EmergencyResponse, error) {
	address := geocode.FallbackAddress
	if s.resolver != nil {
		address = s.resolver.ResolveAddress(ctx, *req.Lat, *req.Lng)
	}

	emergency := &models.EmergencyRequest{
		ProgramID: req.ProgramID,
		Type:      models.EmergencyType(req.Type),
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Address:   address,
		Status:    models.EmergencyStatusPending,
	}
	if requesterID != "" {
		emergency.RequesterID = &requesterID
	}

	if err := s.emergencyRepo.Create(emergency); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.dispatch.EmergencyRaised(ctx, emergency); err != nil {
		logger.CtxWithError(ctx, "emergency created but broadcast failed", err, "emergency_id", emergency.ID)
	}

	return s.buildResponse(emergency), nil
}

func (s *emergencyService) Get(ctx context.Context, emergencyID string) (*dto.EmergencyResponse, error) {
	emergency, err := s.emergencyRepo.FindByID(emergencyID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmergencyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(emergency), nil
}

func (s *emergencyService) List(ctx context.Context, status models.EmergencyStatus) ([]dto.EmergencyResponse, error) {
	emergencies, err := s.emergencyRepo.FindAll(status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.EmergencyResponse, 0, len(emergencies))
	for i := range emergencies {
		responses = append(responses, *s.buildResponse(&emergencies[i]))
	}
	return responses, nil
}

func (s *emergencyService) buildResponse(emergency *models.EmergencyRequest) *dto.EmergencyResponse {
	resp := &dto.EmergencyResponse{
		ID:        emergency.ID,
		Type:      emergency.Type,
		Lat:       emergency.Lat,
		Lng:       emergency.Lng,
		Address:   emergency.Address,
		ProgramID: emergency.ProgramID,
		Status:    emergency.Status,
		HelperID:  emergency.HelperID,
		CreatedAt: emergency.CreatedAt,
	}

	if emergency.HelperID != nil {
		if helper, err := s.profileRepo.FindByUserID(*emergency.HelperID); err == nil {
			resp.HelperName = helper.FullName
		}
	}

	return resp
}
