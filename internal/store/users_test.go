package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input UserInput
		field string
	}{
		{
			name:  "duplicate username",
			input: UserInput{Username: "admin", Password: "password1", Email: "new@ferretto.edu", Name: "X", Role: models.RoleStudent},
			field: "username",
		},
		{
			name:  "duplicate email",
			input: UserInput{Username: "fresh", Password: "password1", Email: "admin@ferretto.edu", Name: "X", Role: models.RoleStudent},
			field: "email",
		},
		{
			name:  "short password",
			input: UserInput{Username: "fresh", Password: "short", Email: "new@ferretto.edu", Name: "X", Role: models.RoleStudent},
			field: "password",
		},
		{
			name:  "unknown role",
			input: UserInput{Username: "fresh", Password: "password1", Email: "new@ferretto.edu", Name: "X", Role: "superuser"},
			field: "role",
		},
		{
			name:  "missing course",
			input: UserInput{Username: "fresh", Password: "password1", Email: "new@ferretto.edu", Name: "X", Role: models.RoleStudent, CourseID: courseID(999)},
			field: "courseId",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tc.input)
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}

	// None of the rejected inputs mutated the document.
	require.Len(t, s.ListUsers(), 3)
}

func TestCreateUserNeverStoresPlaintextPassword(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser(context.Background(), UserInput{
		Username: "dave", Password: "password1", Email: "dave@ferretto.edu",
		Name: "Dave", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	require.NotEqual(t, "password1", user.PasswordHash)
	require.NotEmpty(t, user.PasswordHash)
}

func TestCreateUserJoinsCourseRoster(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser(context.Background(), UserInput{
		Username: "eva", Password: "password1", Email: "eva@ferretto.edu",
		Name: "Eva", Role: models.RoleStudent, CourseID: courseID(101),
	})
	require.NoError(t, err)

	course, err := s.GetCourse(101)
	require.NoError(t, err)
	require.Contains(t, course.Students, user.ID)
}

func TestUpdateUserMovesRoster(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// The seeded student belongs to course 101; move them to 102.
	_, err := s.UpdateUser(ctx, 2, UserInput{
		Username: "student", Email: "student@ferretto.edu", Name: "John Student",
		Role: models.RoleStudent, CourseID: courseID(102),
	})
	require.NoError(t, err)

	old, err := s.GetCourse(101)
	require.NoError(t, err)
	require.NotContains(t, old.Students, int64(2))

	now, err := s.GetCourse(102)
	require.NoError(t, err)
	require.Contains(t, now.Students, int64(2))
}

func TestUpdateUserBlankPasswordKeepsHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetUser(2)
	require.NoError(t, err)

	_, err = s.UpdateUser(ctx, 2, UserInput{
		Username: "student", Email: "student@ferretto.edu", Name: "John Student",
		Role: models.RoleStudent, CourseID: courseID(101),
	})
	require.NoError(t, err)

	after, err := s.GetUser(2)
	require.NoError(t, err)
	require.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// The seeded student authored attendance record 1 and project 1, sits on
	// the course 101 roster and in group 1001.
	_, err := s.LikeProject(ctx, 1, 3)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, 2))

	_, err = s.GetUser(2)
	require.ErrorIs(t, err, ErrNotFound)

	// The cascaded projects also leave every liked set.
	liker, err := s.GetUser(3)
	require.NoError(t, err)
	require.NotContains(t, liker.LikedProjects, int64(1))

	require.Empty(t, s.ListAttendance(AttendanceFilter{UserID: courseID(2)}))
	require.Empty(t, s.ListProjects(courseID(2)))

	course, err := s.GetCourse(101)
	require.NoError(t, err)
	require.NotContains(t, course.Students, int64(2))

	group, err := s.GetGroup(1001)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, group.MemberIDs)

	// The cascade and its audit entry land in one write.
	logs := s.ListSystemLogs(1, models.ActionUserDelete)
	require.Len(t, logs, 1)
}

func TestDeleteUserTwiceIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteUser(ctx, 3))
	countAfterFirst := s.SystemLogCount()

	err := s.DeleteUser(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, countAfterFirst, s.SystemLogCount())
}

func TestSyncCourseMembershipSetSemantics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, UserInput{
		Username: "frank", Password: "password1", Email: "frank@ferretto.edu",
		Name: "Frank", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	// Joining twice never duplicates the roster entry.
	require.NoError(t, s.SyncCourseMembership(ctx, user.ID, nil, courseID(101)))
	require.NoError(t, s.SyncCourseMembership(ctx, user.ID, nil, courseID(101)))

	course, err := s.GetCourse(101)
	require.NoError(t, err)
	occurrences := 0
	for _, id := range course.Students {
		if id == user.ID {
			occurrences++
		}
	}
	require.Equal(t, 1, occurrences)

	// Leaving removes the entry; a missing course is tolerated.
	require.NoError(t, s.SyncCourseMembership(ctx, user.ID, courseID(101), nil))
	require.NoError(t, s.SyncCourseMembership(ctx, user.ID, courseID(999), courseID(888)))

	course, err = s.GetCourse(101)
	require.NoError(t, err)
	require.NotContains(t, course.Students, user.ID)
}

func TestRegisterFaceDescriptor(t *testing.T) {
	s := newTestStore(t)

	token, err := s.RegisterFaceDescriptor(context.Background(), 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := s.GetUser(2)
	require.NoError(t, err)
	require.Equal(t, token, user.FaceDescriptor)
	require.True(t, user.HasFaceID())
}
