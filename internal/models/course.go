package models

import "time"

// Course represents a taught course students can be assigned to.
//
// Students is a denormalized mirror of User.CourseID kept in sync by the
// store's membership operation; it is never recomputed lazily.
type Course struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Lecturer    string    `json:"lecturer"`
	Schedule    string    `json:"schedule"`
	Credits     int       `json:"credits"`
	Description string    `json:"description,omitempty"`
	Students    []int64   `json:"students"`
	Materials   []int64   `json:"materials"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// HasStudent reports whether the denormalized roster contains the user id.
func (c Course) HasStudent(userID int64) bool {
	for _, id := range c.Students {
		if id == userID {
			return true
		}
	}
	return false
}
