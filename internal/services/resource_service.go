package services

import (
	"context"
	"errors"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/pkg/apperrors"
)

type ResourceService interface {
	Create(ctx context.Context, requesterID, programID string, req *dto.CreateResourceRequestRequest) (*dto.ResourceRequestResponse, error)
	ListByProgram(ctx context.Context, programID string) ([]dto.ResourceRequestResponse, error)
}

type resourceService struct {
	resourceRepo repositories.ResourceRequestRepository
	programRepo  repositories.ProgramRepository
	profileRepo  repositories.ProfileRepository
	dispatch     DispatchService
}

func NewResourceService(
	resourceRepo repositories.ResourceRequestRepository,
	programRepo repositories.ProgramRepository,
	profileRepo repositories.ProfileRepository,
	dispatch DispatchService,
) ResourceService {
	return &resourceService{
		resourceRepo: resourceRepo,
		programRepo:  programRepo,
		profileRepo:  profileRepo,
		dispatch:     dispatch,
	}
}

// Create records the request and notifies the program's members. Only
// members may ask for resources; the request survives a failed fan-out.
func (s *resourceService) Create(ctx context.Context, requesterID, programID string, req *dto.CreateResourceRequestRequest) (*dto.ResourceRequestResponse, error) {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if program.Status != models.ProgramStatusActive {
		return nil, apperrors.ErrProgramEnded
	}

	isMember, err := s.programRepo.MembershipExists(programID, requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	// The creator coordinates the program without a membership row.
	if !isMember && program.CreatedBy != requesterID {
		return nil, apperrors.ErrNotProgramMember
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = "medium"
	}

	request := &models.ResourceRequest{
		ProgramID:   programID,
		RequesterID: requesterID,
		ItemName:    req.ItemName,
		Quantity:    quantity,
		Urgency:     urgency,
		Status:      models.ResourceStatusPending,
	}
	if err := s.resourceRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.dispatch.ResourceRequested(ctx, request); err != nil {
		logger.CtxWithError(ctx, "resource request created but fan-out failed", err, "request_id", request.ID)
	}

	return s.buildResponse(request), nil
}

func (s *resourceService) ListByProgram(ctx context.Context, programID string) ([]dto.ResourceRequestResponse, error) {
	requests, err := s.resourceRepo.FindByProgram(programID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ResourceRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *s.buildResponse(&requests[i]))
	}
	return responses, nil
}

func (s *resourceService) buildResponse(request *models.ResourceRequest) *dto.ResourceRequestResponse {
	resp := &dto.ResourceRequestResponse{
		ID:          request.ID,
		ProgramID:   request.ProgramID,
		RequesterID: request.RequesterID,
		ItemName:    request.ItemName,
		Quantity:    request.Quantity,
		Urgency:     request.Urgency,
		Status:      request.Status,
		AcceptedBy:  request.AcceptedBy,
		CreatedAt:   request.CreatedAt,
	}

	if requester, err := s.profileRepo.FindByUserID(request.RequesterID); err == nil {
		resp.RequesterName = requester.FullName
	}

	return resp
}
