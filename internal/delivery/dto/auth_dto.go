package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Admin Doctor"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	SessionID   string        `json:"session_id"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CurrentUserResponse struct {
	SessionID  string    `json:"session_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// ConfirmationResponse reports the state of a two-step action.
type ConfirmationResponse struct {
	Action   string `json:"action"`
	EntityID uint   `json:"entity_id"`
	State    string `json:"state"`
}
