package dto

import "emotrack/internal/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Account *domain.Account `json:"account"`
	Token   string          `json:"token"`
}

type RecoveryRequest struct {
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
