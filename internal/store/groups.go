package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// GroupInput carries the mutable fields of a group. MemberIDs are stored with
// set semantics; the creator is always a member.
type GroupInput struct {
	Name        string
	Description string
	MemberIDs   []int64
}

// ListGroups returns every group.
func (s *Store) ListGroups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Group, len(s.doc.Groups))
	copy(out, s.doc.Groups)
	return out
}

// AccessibleGroups returns the groups visible to the user: all of them for
// admins, membership only for everyone else.
func (s *Store) AccessibleGroups(user models.User) []models.Group {
	if user.IsAdmin() {
		return s.ListGroups()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Group, 0, len(s.doc.Groups))
	for _, g := range s.doc.Groups {
		if g.HasMember(user.ID) {
			out = append(out, g)
		}
	}
	return out
}

// GetGroup returns the group with the given id.
func (s *Store) GetGroup(id int64) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.doc.GroupByID(id)
	if group == nil {
		return models.Group{}, ErrNotFound
	}
	return *group, nil
}

// CreateGroup adds a group owned by the creator, who joins the member set
// regardless of the input.
func (s *Store) CreateGroup(ctx context.Context, creatorID int64, input GroupInput) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.UserByID(creatorID) == nil {
		return models.Group{}, ErrNotFound
	}

	now := s.now()
	group := models.Group{
		ID:          s.allocateID(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   creatorID,
		MemberIDs:   dedupeMembers(creatorID, input.MemberIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.doc.Groups = append(s.doc.Groups, group)
	s.record(models.ActionGroupCreate, fmt.Sprintf("Created group: %s", group.Name), &creatorID)

	if err := s.persist(ctx); err != nil {
		return group, err
	}
	return group, nil
}

// UpdateGroup edits a group, rewriting the member set.
func (s *Store) UpdateGroup(ctx context.Context, id int64, input GroupInput) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.doc.GroupByID(id)
	if group == nil {
		return models.Group{}, ErrNotFound
	}

	group.Name = input.Name
	group.Description = input.Description
	group.MemberIDs = dedupeMembers(group.CreatedBy, input.MemberIDs)
	group.UpdatedAt = s.now()

	s.record(models.ActionGroupUpdate, fmt.Sprintf("Updated group: %s", group.Name), nil)

	updated := *group
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// PostGroupMessage appends a chat message. Non-members are rejected unless
// they are admins.
func (s *Store) PostGroupMessage(ctx context.Context, groupID int64, author models.User, content string) (models.GroupMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.doc.GroupByID(groupID)
	if group == nil {
		return models.GroupMessage{}, ErrNotFound
	}
	if !group.HasMember(author.ID) && !author.IsAdmin() {
		return models.GroupMessage{}, NewValidationError("groupId", "not a member of this group")
	}

	message := models.GroupMessage{
		ID:        s.allocateID(),
		GroupID:   groupID,
		UserID:    author.ID,
		Content:   content,
		CreatedAt: s.now(),
	}

	s.doc.GroupMessages = append(s.doc.GroupMessages, message)
	authorID := author.ID
	s.record(models.ActionGroupChat, fmt.Sprintf("Sent message in %s", group.Name), &authorID)

	if err := s.persist(ctx); err != nil {
		return message, err
	}
	return message, nil
}

// ListGroupMessages returns a group's messages oldest first.
func (s *Store) ListGroupMessages(groupID int64) []models.GroupMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GroupMessage, 0)
	for _, m := range s.doc.GroupMessages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func dedupeMembers(creatorID int64, memberIDs []int64) []int64 {
	seen := map[int64]struct{}{creatorID: {}}
	out := []int64{creatorID}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
