package dto

import "emotrack/internal/domain"

type CreateAccountRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type UpdateAccountRequest struct {
	Email    *string      `json:"email,omitempty"`
	Password *string      `json:"password,omitempty"`
	Role     *domain.Role `json:"role,omitempty"`
}
