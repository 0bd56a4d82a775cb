package store

import (
	"context"
	"fmt"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// CourseInput carries the mutable fields of a course.
type CourseInput struct {
	Code        string
	Name        string
	Lecturer    string
	Schedule    string
	Credits     int
	Description string
}

// ListCourses returns a copy of every course.
func (s *Store) ListCourses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Course, len(s.doc.Courses))
	copy(out, s.doc.Courses)
	return out
}

// GetCourse returns the course with the given id.
func (s *Store) GetCourse(id int64) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.doc.CourseByID(id)
	if course == nil {
		return models.Course{}, ErrNotFound
	}
	return *course, nil
}

// CreateCourse adds a course with a unique code and an empty roster.
func (s *Store) CreateCourse(ctx context.Context, input CourseInput) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCourseCode(input.Code, 0); err != nil {
		return models.Course{}, err
	}

	course := models.Course{
		ID:          s.allocateID(),
		Code:        input.Code,
		Name:        input.Name,
		Lecturer:    input.Lecturer,
		Schedule:    input.Schedule,
		Credits:     input.Credits,
		Description: input.Description,
		Students:    []int64{},
		Materials:   []int64{},
		CreatedAt:   s.now(),
	}

	s.doc.Courses = append(s.doc.Courses, course)
	s.record(models.ActionCourseCreate, fmt.Sprintf("Created course: %s", course.Code), nil)

	if err := s.persist(ctx); err != nil {
		return course, err
	}
	return course, nil
}

// UpdateCourse edits course attributes. The roster is never touched here; it
// only changes through membership synchronization.
func (s *Store) UpdateCourse(ctx context.Context, id int64, input CourseInput) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.doc.CourseByID(id)
	if course == nil {
		return models.Course{}, ErrNotFound
	}
	if err := s.checkCourseCode(input.Code, id); err != nil {
		return models.Course{}, err
	}

	course.Code = input.Code
	course.Name = input.Name
	course.Lecturer = input.Lecturer
	course.Schedule = input.Schedule
	course.Credits = input.Credits
	course.Description = input.Description
	course.UpdatedAt = s.now()

	s.record(models.ActionCourseUpdate, fmt.Sprintf("Updated course: %s", course.Code), nil)

	updated := *course
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteCourse removes the course, nulls the foreign key on every user and
// material that referenced it, and drops attendance records for it. Users and
// materials themselves survive; projects and groups are untouched. All
// effects land in a single persisted write.
func (s *Store) DeleteCourse(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := s.doc.CourseByID(id)
	if course == nil {
		return ErrNotFound
	}
	code := course.Code

	courses := s.doc.Courses[:0]
	for _, c := range s.doc.Courses {
		if c.ID != id {
			courses = append(courses, c)
		}
	}
	s.doc.Courses = courses

	for i := range s.doc.Users {
		if s.doc.Users[i].CourseID != nil && *s.doc.Users[i].CourseID == id {
			s.doc.Users[i].CourseID = nil
		}
	}
	for i := range s.doc.Materials {
		if s.doc.Materials[i].CourseID != nil && *s.doc.Materials[i].CourseID == id {
			s.doc.Materials[i].CourseID = nil
		}
	}

	attendance := s.doc.Attendance[:0]
	for _, a := range s.doc.Attendance {
		if a.CourseID == nil || *a.CourseID != id {
			attendance = append(attendance, a)
		}
	}
	s.doc.Attendance = attendance

	if s.currentUser != nil && s.currentUser.CourseID != nil && *s.currentUser.CourseID == id {
		s.currentUser.CourseID = nil
		s.mirrorIdentity(ctx)
	}

	s.record(models.ActionCourseDelete, fmt.Sprintf("Deleted course: %s", code), nil)
	return s.persist(ctx)
}

func (s *Store) checkCourseCode(code string, selfID int64) error {
	for _, c := range s.doc.Courses {
		if c.ID != selfID && c.Code == code {
			return NewValidationError("code", "course code already exists")
		}
	}
	return nil
}
