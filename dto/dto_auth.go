package dto

import m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"

type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     m.Role      `json:"role"`
	Division *m.Division `json:"division,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        *m.User `json:"user"`
}

type ProfileUpdateRequest struct {
	Username        string `json:"username,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// AccountReviewRequest approves or rejects a pending registration.
type AccountReviewRequest struct {
	UserID string         `json:"user_id"`
	Action m.ReviewAction `json:"action" enums:"approve,reject"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
