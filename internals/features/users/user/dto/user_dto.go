package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin super_admin co_admin teacher student"`
}

type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin super_admin co_admin teacher student"`
	IsActive *bool   `json:"is_active"`
}

// ================== RESPONSE ==================

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// ================ CONVERSION =================

func ToUserResponse(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponseList(models []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(models))
	for i := range models {
		out = append(out, ToUserResponse(&models[i]))
	}
	return out
}
