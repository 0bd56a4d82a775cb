package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// Leaderboard orderings.
const (
	LeaderboardMostLiked  = "most_liked"
	LeaderboardFeatured   = "featured"
	LeaderboardMostViewed = "most_viewed"
)

// ProjectInput carries the mutable fields of a playground project.
type ProjectInput struct {
	Name        string
	Description string
	Code        string
	Visibility  string
	Category    string
	Tags        []string
}

// ListProjects returns projects, optionally restricted to one owner.
func (s *Store) ListProjects(userID *int64) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.doc.Projects))
	for _, p := range s.doc.Projects {
		if userID != nil && p.UserID != *userID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetProject returns the project with the given id.
func (s *Store) GetProject(id int64) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.doc.ProjectByID(id)
	if project == nil {
		return models.Project{}, ErrNotFound
	}
	return *project, nil
}

// CreateProject saves a new project for the owner.
func (s *Store) CreateProject(ctx context.Context, ownerID int64, input ProjectInput) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.UserByID(ownerID) == nil {
		return models.Project{}, ErrNotFound
	}
	if !models.ValidVisibility(input.Visibility) {
		return models.Project{}, NewValidationError("visibility", "unknown visibility")
	}

	now := s.now()
	project := models.Project{
		ID:          s.allocateID(),
		UserID:      ownerID,
		Name:        input.Name,
		Description: input.Description,
		Code:        input.Code,
		Visibility:  input.Visibility,
		Category:    input.Category,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.doc.Projects = append(s.doc.Projects, project)
	s.doc.Analytics.ProjectStats[project.CreatedAt.Format("2006-01-02")]++
	s.record(models.ActionProjectSave, fmt.Sprintf("Saved project: %s", project.Name), &ownerID)

	if err := s.persist(ctx); err != nil {
		return project, err
	}
	return project, nil
}

// UpdateProject edits an existing project.
func (s *Store) UpdateProject(ctx context.Context, id int64, input ProjectInput) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.doc.ProjectByID(id)
	if project == nil {
		return models.Project{}, ErrNotFound
	}
	if !models.ValidVisibility(input.Visibility) {
		return models.Project{}, NewValidationError("visibility", "unknown visibility")
	}

	project.Name = input.Name
	project.Description = input.Description
	project.Code = input.Code
	project.Visibility = input.Visibility
	project.Category = input.Category
	project.Tags = input.Tags
	project.UpdatedAt = s.now()

	s.record(models.ActionProjectSave, fmt.Sprintf("Saved project: %s", project.Name), nil)

	updated := *project
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteProject removes the project.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.doc.ProjectByID(id)
	if project == nil {
		return ErrNotFound
	}
	name := project.Name

	projects := s.doc.Projects[:0]
	for _, p := range s.doc.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	s.doc.Projects = projects
	s.dropLikedReferences(id)

	s.record(models.ActionProjectDelete, fmt.Sprintf("Deleted project: %s", name), nil)
	return s.persist(ctx)
}

// dropLikedReferences removes the given project ids from every user's liked
// set so deleted projects leave no dangling references behind.
func (s *Store) dropLikedReferences(ids ...int64) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	for i := range s.doc.Users {
		kept := s.doc.Users[i].LikedProjects[:0]
		for _, projectID := range s.doc.Users[i].LikedProjects {
			if _, dropped := gone[projectID]; !dropped {
				kept = append(kept, projectID)
			}
		}
		s.doc.Users[i].LikedProjects = kept
	}
}

// LikeProject counts a like once per liker. Liking twice is a no-op.
func (s *Store) LikeProject(ctx context.Context, id, likerID int64) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.doc.ProjectByID(id)
	if project == nil {
		return models.Project{}, ErrNotFound
	}
	liker := s.doc.UserByID(likerID)
	if liker == nil {
		return models.Project{}, ErrNotFound
	}

	for _, likedID := range liker.LikedProjects {
		if likedID == id {
			return *project, nil
		}
	}

	liker.LikedProjects = append(liker.LikedProjects, id)
	project.Likes++

	updated := *project
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// ViewProject bumps the view counter.
func (s *Store) ViewProject(ctx context.Context, id int64) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := s.doc.ProjectByID(id)
	if project == nil {
		return models.Project{}, ErrNotFound
	}

	project.Views++

	updated := *project
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// ForkProject clones the project's code into a new project owned by the
// forker and bumps the source fork counter.
func (s *Store) ForkProject(ctx context.Context, id, forkerID int64) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := s.doc.ProjectByID(id)
	if source == nil {
		return models.Project{}, ErrNotFound
	}
	if s.doc.UserByID(forkerID) == nil {
		return models.Project{}, ErrNotFound
	}

	source.Forks++

	now := s.now()
	fork := models.Project{
		ID:          s.allocateID(),
		UserID:      forkerID,
		Name:        fmt.Sprintf("%s (fork)", source.Name),
		Description: source.Description,
		Code:        source.Code,
		Visibility:  models.ProjectVisibilityPrivate,
		Category:    source.Category,
		Tags:        append([]string(nil), source.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.doc.Projects = append(s.doc.Projects, fork)
	s.record(models.ActionProjectFork, fmt.Sprintf("Forked project: %s", source.Name), &forkerID)

	if err := s.persist(ctx); err != nil {
		return fork, err
	}
	return fork, nil
}

// Leaderboard returns public projects in the requested order. Unknown kinds
// fall back to most viewed.
func (s *Store) Leaderboard(kind string) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.doc.Projects))
	for _, p := range s.doc.Projects {
		if p.IsPublic() {
			out = append(out, p)
		}
	}

	switch kind {
	case LeaderboardMostLiked:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	case LeaderboardFeatured:
		sort.SliceStable(out, func(i, j int) bool { return out[i].EngagementScore() > out[j].EngagementScore() })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	}
	return out
}
