package dto

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token and the authenticated profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
