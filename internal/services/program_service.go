package services

import (
	"context"
	"encoding/json"
	"errors"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProgramService interface {
	Create(ctx context.Context, creatorID string, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error)
	Get(ctx context.Context, programID string) (*dto.ProgramResponse, error)
	List(ctx context.Context, status models.ProgramStatus) ([]dto.ProgramResponse, error)
	UpdateStatus(ctx context.Context, actorID, programID string, status models.ProgramStatus) error
	ListMembers(ctx context.Context, programID string) ([]dto.ProfileResponse, error)
}

type programService struct {
	programRepo repositories.ProgramRepository
	profileRepo repositories.ProfileRepository
	dispatch    DispatchService
}

func NewProgramService(
	programRepo repositories.ProgramRepository,
	profileRepo repositories.ProfileRepository,
	dispatch DispatchService,
) ProgramService {
	return &programService{
		programRepo: programRepo,
		profileRepo: profileRepo,
		dispatch:    dispatch,
	}
}

// Create persists the program and then fans out the program_alert broadcast.
// The program stays created even when fan-out fails; notification delivery
// is a side effect, not a transactional requirement.
func (s *programService) Create(ctx context.Context, creatorID string, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	var skills datatypes.JSON
	if len(req.RequiredSkills) > 0 {
		if raw, err := json.Marshal(req.RequiredSkills); err == nil {
			skills = datatypes.JSON(raw)
		}
	}

	program := &models.Program{
		Title:          req.Title,
		Description:    req.Description,
		DisasterType:   req.DisasterType,
		Severity:       models.SeverityLevel(req.Severity),
		Lat:            req.Lat,
		Lng:            req.Lng,
		LocationName:   req.LocationName,
		Status:         models.ProgramStatusActive,
		CreatedBy:      creatorID,
		MaxVolunteers:  req.MaxVolunteers,
		RequiredSkills: skills,
	}

	if err := s.programRepo.Create(program); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.dispatch.ProgramCreated(ctx, program); err != nil {
		logger.CtxWithError(ctx, "program created but alert fan-out failed", err, "program_id", program.ID)
	}

	return s.buildResponse(program), nil
}

func (s *programService) Get(ctx context.Context, programID string) (*dto.ProgramResponse, error) {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(program), nil
}

func (s *programService) List(ctx context.Context, status models.ProgramStatus) ([]dto.ProgramResponse, error) {
	programs, err := s.programRepo.FindAll(status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		responses = append(responses, *s.buildResponse(&programs[i]))
	}
	return responses, nil
}

// UpdateStatus applies the only legal mutation: active -> completed|paused,
// and only by the creator.
func (s *programService) UpdateStatus(ctx context.Context, actorID, programID string, status models.ProgramStatus) error {
	program, err := s.programRepo.FindByID(programID)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if program.CreatedBy != actorID {
		return apperrors.NewForbiddenError("Only the program creator can change its status")
	}

	if err := s.programRepo.UpdateStatus(programID, status); err != nil {
		if errors.Is(err, repositories.ErrProgramNotActive) {
			return apperrors.ErrInvalidStatus("program", "Program is no longer active")
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "program status changed", "program_id", programID, "status", status)
	return nil
}

func (s *programService) ListMembers(ctx context.Context, programID string) ([]dto.ProfileResponse, error) {
	if _, err := s.programRepo.FindByID(programID); err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	members, err := s.programRepo.FindMembers(programID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProfileResponse, 0, len(members))
	for i := range members {
		responses = append(responses, *buildProfileResponse(&members[i]))
	}
	return responses, nil
}

func (s *programService) buildResponse(program *models.Program) *dto.ProgramResponse {
	var skills []string
	if len(program.RequiredSkills) > 0 {
		_ = json.Unmarshal(program.RequiredSkills, &skills)
	}

	resp := &dto.ProgramResponse{
		ID:             program.ID,
		Title:          program.Title,
		Description:    program.Description,
		DisasterType:   program.DisasterType,
		Severity:       program.Severity,
		Lat:            program.Lat,
		Lng:            program.Lng,
		LocationName:   program.LocationName,
		Status:         program.Status,
		CreatedBy:      program.CreatedBy,
		MaxVolunteers:  program.MaxVolunteers,
		RequiredSkills: skills,
		CreatedAt:      program.CreatedAt,
	}

	if creator, err := s.profileRepo.FindByUserID(program.CreatedBy); err == nil {
		resp.CreatorName = creator.FullName
	}
	if count, err := s.programRepo.CountMembers(program.ID); err == nil {
		resp.VolunteerCount = count
	}

	return resp
}
