package dto

// LoginRequest for password authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest for admin-gated account creation.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ChangePasswordRequest for self-service password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// SetActiveRequest enables or disables an account.
type SetActiveRequest struct {
	Active bool `json:"active"`
}
