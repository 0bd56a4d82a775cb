package models

import "time"

// User roles recognised by the portal.
const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User represents a portal account across all roles.
type User struct {
	ID             int64                  `json:"id"`
	Username       string                 `json:"username"`
	PasswordHash   string                 `json:"passwordHash,omitempty"`
	Email          string                 `json:"email"`
	Name           string                 `json:"name"`
	Role           string                 `json:"role"`
	CourseID       *int64                 `json:"courseId"`
	FaceDescriptor string                 `json:"faceDescriptor,omitempty"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	Preferences    map[string]interface{} `json:"preferences,omitempty"`
	LikedProjects  []int64                `json:"likedProjects,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastLogin      *time.Time             `json:"lastLogin"`
}

// IsActive reports whether the account may log in.
func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasFaceID reports whether a biometric descriptor has been registered.
func (u User) HasFaceID() bool {
	return u.FaceDescriptor != ""
}

// ValidRole reports whether the supplied role is one the portal recognises.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	default:
		return false
	}
}
