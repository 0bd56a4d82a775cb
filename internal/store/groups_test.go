package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

func TestCreateGroupCreatorIsAlwaysMember(t *testing.T) {
	s := newTestStore(t)

	group, err := s.CreateGroup(context.Background(), 3, GroupInput{
		Name:      "Algo Club",
		MemberIDs: []int64{2, 2, 3},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), group.CreatedBy)
	require.ElementsMatch(t, []int64{2, 3}, group.MemberIDs)
}

func TestAccessibleGroups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateGroup(ctx, 1, GroupInput{Name: "Staff Only", MemberIDs: []int64{1}})
	require.NoError(t, err)

	admin, err := s.GetUser(1)
	require.NoError(t, err)
	student, err := s.GetUser(2)
	require.NoError(t, err)

	require.Len(t, s.AccessibleGroups(admin), 2)
	require.Equal(t, s.ListGroups(), s.AccessibleGroups(admin))

	visible := s.AccessibleGroups(student)
	require.Len(t, visible, 1)
	require.Equal(t, int64(1001), visible[0].ID)
}

func TestPostGroupMessageRequiresMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	outsider, err := s.CreateUser(ctx, UserInput{
		Username: "gus", Password: "password1", Email: "gus@ferretto.edu",
		Name: "Gus", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	_, err = s.PostGroupMessage(ctx, 1001, outsider, "hello?")
	require.Error(t, err)

	member, err := s.GetUser(2)
	require.NoError(t, err)
	message, err := s.PostGroupMessage(ctx, 1001, member, "hi all")
	require.NoError(t, err)
	require.Equal(t, int64(2), message.UserID)

	logs := s.ListSystemLogs(1, models.ActionGroupChat)
	require.Len(t, logs, 1)
}

func TestListGroupMessagesOldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	member, err := s.GetUser(2)
	require.NoError(t, err)
	_, err = s.PostGroupMessage(ctx, 1001, member, "newer")
	require.NoError(t, err)

	messages := s.ListGroupMessages(1001)
	require.Len(t, messages, 2)
	require.Equal(t, int64(9001), messages[0].ID) // seeded welcome message
	require.Equal(t, "newer", messages[1].Content)
}
