package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reliefhub_backend/internal/auth"
	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Register creates the credentials row and its profile, then issues a token.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	var skills datatypes.JSON
	if len(req.Skills) > 0 {
		if raw, err := json.Marshal(req.Skills); err == nil {
			skills = datatypes.JSON(raw)
		}
	}

	profile := &models.Profile{
		UserID:   user.ID,
		FullName: req.FullName,
		Role:     user.Role,
		Phone:    req.Phone,
		Skills:   skills,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return &dto.AuthResponse{AccessToken: token, UserID: user.ID, Role: user.Role}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{AccessToken: token, UserID: user.ID, Role: user.Role}, nil
}
