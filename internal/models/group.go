package models

import "time"

// Group represents a collaboration group users chat in.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"createdBy"`
	MemberIDs   []int64   `json:"memberIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasMember reports whether the user belongs to the group.
func (g Group) HasMember(userID int64) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// GroupMessage represents a single chat message posted in a group.
type GroupMessage struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"groupId"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
