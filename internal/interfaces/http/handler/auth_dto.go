package handler

// =====================
// Auth Request DTOs
// =====================

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100" example:"admin"` // username or email
	Password string `json:"password" binding:"required,max=128" example:"Admin@12345"`
}

// RegisterRequest represents the request body for registration and admin setup
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50" example:"rahim"`
	Email     string `json:"email" binding:"required,email,max=100" example:"rahim@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=128" example:"Secret@123"`
	FirstName string `json:"first_name" binding:"required,max=50" example:"Rahim"`
	LastName  string `json:"last_name" binding:"required,max=50" example:"Uddin"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke with the session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest represents the editable profile fields
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=100"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}
