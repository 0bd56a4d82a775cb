package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

func TestCreateCourseRejectsDuplicateCode(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCourse(context.Background(), CourseInput{
		Code: "CS101", Name: "Duplicate", Lecturer: "Someone",
	})
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "code", ve.Field)
}

func TestUpdateCourseKeepsRoster(t *testing.T) {
	s := newTestStore(t)

	updated, err := s.UpdateCourse(context.Background(), 101, CourseInput{
		Code: "CS101", Name: "Web Development II", Lecturer: "Dr. Sarah Connor", Credits: 4,
	})
	require.NoError(t, err)
	require.Equal(t, "Web Development II", updated.Name)
	require.Equal(t, []int64{2}, updated.Students)
}

func TestDeleteCourseDetachesReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteCourse(ctx, 101))

	_, err := s.GetCourse(101)
	require.ErrorIs(t, err, ErrNotFound)

	// Enrolled accounts survive with no course assignment.
	student, err := s.GetUser(2)
	require.NoError(t, err)
	require.Nil(t, student.CourseID)

	// Materials survive as general materials.
	material, err := s.GetMaterial(1)
	require.NoError(t, err)
	require.Nil(t, material.CourseID)

	// Attendance for the course is dropped.
	require.Empty(t, s.ListAttendance(AttendanceFilter{CourseID: courseID(101)}))

	logs := s.ListSystemLogs(1, models.ActionCourseDelete)
	require.Len(t, logs, 1)
}

func TestDeleteCourseTwiceIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteCourse(ctx, 102))
	err := s.DeleteCourse(ctx, 102)
	require.ErrorIs(t, err, ErrNotFound)
}
