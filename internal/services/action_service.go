package services

import (
	"context"
	"errors"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/pkg/apperrors"
)

// ActionService executes the action a notification card offers. Every
// mutation is a guarded write against the store; repeated clicks and
// concurrent actors fall out of the guards, never out of UI debouncing.
type ActionService interface {
	JoinProgram(ctx context.Context, userID, programID string) error
	AcceptEmergency(ctx context.Context, userID, emergencyID string) error
	CompleteEmergency(ctx context.Context, userID, emergencyID string) error
	AcceptResourceRequest(ctx context.Context, userID, requestID string) error
	CompleteResourceRequest(ctx context.Context, userID, requestID string) error
}

type actionService struct {
	programRepo   repositories.ProgramRepository
	resourceRepo  repositories.ResourceRequestRepository
	emergencyRepo repositories.EmergencyRepository
}

func NewActionService(
	programRepo repositories.ProgramRepository,
	resourceRepo repositories.ResourceRequestRepository,
	emergencyRepo repositories.EmergencyRepository,
) ActionService {
	return &actionService{
		programRepo:   programRepo,
		resourceRepo:  resourceRepo,
		emergencyRepo: emergencyRepo,
	}
}

// JoinProgram inserts a membership for an active program. The unique index
// makes the insert itself the idempotency guard; a duplicate comes back as
// the benign "already joined" rather than an internal error.
func (s *actionService) JoinProgram(ctx context.Context, userID, programID string) error {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if program.Status != models.ProgramStatusActive {
		return apperrors.ErrProgramEnded
	}

	membership := &models.ProgramMembership{
		ProgramID:   programID,
		VolunteerID: userID,
	}
	if err := s.programRepo.CreateMembership(membership); err != nil {
		if errors.Is(err, repositories.ErrAlreadyMember) {
			return apperrors.ErrAlreadyJoined
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "volunteer joined program", "program_id", programID, "volunteer_id", userID)
	return nil
}

// AcceptEmergency claims the emergency for the acting user. The repository
// update only fires while the row is pending and unassigned, so two
// concurrent "I will help" clicks produce exactly one helper.
func (s *actionService) AcceptEmergency(ctx context.Context, userID, emergencyID string) error {
	if err := s.emergencyRepo.Claim(emergencyID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmergencyNotFound):
			return apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrEmergencyClaimed):
			return apperrors.ErrAlreadyHelped
		default:
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "emergency claimed", "emergency_id", emergencyID, "helper_id", userID)
	return nil
}

// CompleteEmergency finishes an in_progress emergency; only the assigned
// helper passes the guard.
func (s *actionService) CompleteEmergency(ctx context.Context, userID, emergencyID string) error {
	if err := s.emergencyRepo.Complete(emergencyID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmergencyNotFound):
			return apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrEmergencyNotClaimed):
			return apperrors.ErrNotAssignedHelper
		default:
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "emergency completed", "emergency_id", emergencyID, "helper_id", userID)
	return nil
}

// AcceptResourceRequest moves a pending request to providing with the acting
// user as provider.
func (s *actionService) AcceptResourceRequest(ctx context.Context, userID, requestID string) error {
	if err := s.resourceRepo.Accept(requestID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrResourceRequestNotFound):
			return apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrRequestNotPending):
			return apperrors.ErrRequestNotPending
		default:
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "resource request accepted", "request_id", requestID, "provider_id", userID)
	return nil
}

// CompleteResourceRequest finishes a providing request; only the accepted
// provider passes the guard. completed is terminal.
func (s *actionService) CompleteResourceRequest(ctx context.Context, userID, requestID string) error {
	if err := s.resourceRepo.Complete(requestID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrResourceRequestNotFound):
			return apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrRequestNotProviding):
			return apperrors.ErrNotRequestProvider
		default:
			return apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "resource request completed", "request_id", requestID, "provider_id", userID)
	return nil
}
