package dto

import "reliefhub_backend/internal/models"

type UpdateProfileRequest struct {
	FullName string   `json:"full_name" validate:"required"`
	Phone    string   `json:"phone"`
	Skills   []string `json:"skills"`
}

type ProfileResponse struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
	Phone    string          `json:"phone"`
	Skills   []string        `json:"skills"`
}
