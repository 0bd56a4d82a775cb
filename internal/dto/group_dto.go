package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// GroupRequest carries group create/update payloads.
type GroupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	MemberIDs   []int64 `json:"memberIds"`
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	MemberIDs   []int64   `json:"memberIds"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewGroupResponse maps a group model to its public view.
func NewGroupResponse(group models.Group) GroupResponse {
	members := group.MemberIDs
	if members == nil {
		members = []int64{}
	}
	return GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedBy:   group.CreatedBy,
		MemberIDs:   members,
		MemberCount: len(members),
		CreatedAt:   group.CreatedAt,
	}
}

// NewGroupResponses maps a slice of group models.
func NewGroupResponses(groups []models.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, NewGroupResponse(group))
	}
	return out
}

// MessageRequest carries a chat message payload.
type MessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// MessageResponse is the public view of a chat message.
type MessageResponse struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"groupId"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMessageResponse maps a chat message to its public view.
func NewMessageResponse(message models.GroupMessage) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		GroupID:   message.GroupID,
		UserID:    message.UserID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// NewMessageResponses maps a slice of chat messages.
func NewMessageResponses(messages []models.GroupMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageResponse(message))
	}
	return out
}
