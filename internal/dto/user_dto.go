package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// UserRequest carries user create/update payloads. Password may be blank on
// update to keep the stored hash.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin lecturer student"`
	CourseID *int64 `json:"courseId"`
	Notes    string `json:"notes"`
	Status   string `json:"status" validate:"omitempty,oneof=active disabled"`
}

// UserResponse is the public view of an account. The password hash never
// leaves the store.
type UserResponse struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	CourseID       *int64     `json:"courseId"`
	FaceRegistered bool       `json:"faceRegistered"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLogin      *time.Time `json:"lastLogin"`
}

// NewUserResponse maps a user model to its public view.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		CourseID:       user.CourseID,
		FaceRegistered: user.HasFaceID(),
		Status:         user.Status,
		Notes:          user.Notes,
		CreatedAt:      user.CreatedAt,
		LastLogin:      user.LastLogin,
	}
}

// NewUserResponses maps a slice of user models.
func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
