package auth

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest represents a self-service profile patch. Only fields
// present in the payload are applied.
type ProfileUpdateRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
	IsAdmin         *bool   `json:"is_admin"`
}
