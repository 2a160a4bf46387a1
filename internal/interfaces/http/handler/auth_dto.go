package handler

import "github.com/portal/backend/internal/application/identity"

// RegisterRequest represents a self-service registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"client@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"correct-horse"`
	FirstName string `json:"first_name" binding:"required" example:"Janet"`
	LastName  string `json:"last_name" binding:"required" example:"Fraser"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"client@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at" example:"2026-01-24T12:00:00Z"`
	TokenType   string `json:"token_type" example:"Bearer"`
}

// UserResponse represents a user with their profile in API responses
type UserResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string `json:"email" example:"client@example.com"`
	Role      string `json:"role" example:"client" enums:"admin,client"`
	FirstName string `json:"first_name" example:"Janet"`
	LastName  string `json:"last_name" example:"Fraser"`
	Company   string `json:"company" example:"Fraser Interiors"`
	Phone     string `json:"phone" example:"+44 20 7946 0123"`
	IsActive  bool   `json:"is_active" example:"true"`
}

// AuthResponse represents the result of registration or login
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

func toUserResponse(info *identity.UserInfo) UserResponse {
	return UserResponse{
		ID:        info.ID.String(),
		Email:     info.Email,
		Role:      string(info.Role),
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Company:   info.Company,
		Phone:     info.Phone,
		IsActive:  info.IsActive,
	}
}

func toAuthResponse(result *identity.AuthResult) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken: result.AccessToken,
			ExpiresAt:   formatTime(result.ExpiresAt),
			TokenType:   result.TokenType,
		},
		User: toUserResponse(&result.User),
	}
}
