package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// CourseRequest carries course create/update payloads.
type CourseRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Lecturer    string `json:"lecturer" validate:"required"`
	Schedule    string `json:"schedule"`
	Credits     int    `json:"credits" validate:"gte=0"`
	Description string `json:"description"`
}

// CourseResponse is the public view of a course, roster included.
type CourseResponse struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Lecturer     string    `json:"lecturer"`
	Schedule     string    `json:"schedule"`
	Credits      int       `json:"credits"`
	Description  string    `json:"description,omitempty"`
	Students     []int64   `json:"students"`
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCourseResponse maps a course model to its public view.
func NewCourseResponse(course models.Course) CourseResponse {
	students := course.Students
	if students == nil {
		students = []int64{}
	}
	return CourseResponse{
		ID:           course.ID,
		Code:         course.Code,
		Name:         course.Name,
		Lecturer:     course.Lecturer,
		Schedule:     course.Schedule,
		Credits:      course.Credits,
		Description:  course.Description,
		Students:     students,
		StudentCount: len(students),
		CreatedAt:    course.CreatedAt,
	}
}

// NewCourseResponses maps a slice of course models.
func NewCourseResponses(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, NewCourseResponse(course))
	}
	return out
}
