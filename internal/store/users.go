package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// MinPasswordLength applies on account creation and password change.
const MinPasswordLength = 8

// UserInput carries the mutable fields of a user account. Password is the
// clear-text input; it is hashed before the document ever sees it.
type UserInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Role     string
	CourseID *int64
	Notes    string
	Status   string
}

// ListUsers returns a copy of every user account.
func (s *Store) ListUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.doc.Users))
	copy(out, s.doc.Users)
	return out
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.doc.UserByID(id)
	if user == nil {
		return models.User{}, ErrNotFound
	}
	return *user, nil
}

// CreateUser adds a new account, enforcing username/email uniqueness and the
// course foreign key, and synchronizes the course roster.
func (s *Store) CreateUser(ctx context.Context, input UserInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUserUniqueness(input.Username, input.Email, 0); err != nil {
		return models.User{}, err
	}
	if len(input.Password) < MinPasswordLength {
		return models.User{}, NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if !models.ValidRole(input.Role) {
		return models.User{}, NewValidationError("role", "unknown role")
	}
	if input.CourseID != nil && s.doc.CourseByID(*input.CourseID) == nil {
		return models.User{}, NewValidationError("courseId", "course does not exist")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	status := input.Status
	if status == "" {
		status = models.UserStatusActive
	}

	user := models.User{
		ID:           s.allocateID(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		CourseID:     input.CourseID,
		Status:       status,
		Notes:        input.Notes,
		CreatedAt:    s.now(),
	}

	s.doc.Users = append(s.doc.Users, user)
	s.syncMembership(user.ID, nil, user.CourseID)
	s.record(models.ActionUserCreate, fmt.Sprintf("Created user: %s", user.Name), nil)

	if err := s.persist(ctx); err != nil {
		return user, err
	}
	return user, nil
}

// UpdateUser edits an existing account. A blank password keeps the stored
// hash; a course change re-synchronizes both rosters.
func (s *Store) UpdateUser(ctx context.Context, id int64, input UserInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.doc.UserByID(id)
	if existing == nil {
		return models.User{}, ErrNotFound
	}

	if err := s.checkUserUniqueness(input.Username, input.Email, id); err != nil {
		return models.User{}, err
	}
	if !models.ValidRole(input.Role) {
		return models.User{}, NewValidationError("role", "unknown role")
	}
	if input.CourseID != nil && s.doc.CourseByID(*input.CourseID) == nil {
		return models.User{}, NewValidationError("courseId", "course does not exist")
	}
	if input.Password != "" && len(input.Password) < MinPasswordLength {
		return models.User{}, NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	oldCourseID := existing.CourseID

	existing.Username = input.Username
	existing.Email = input.Email
	existing.Name = input.Name
	existing.Role = input.Role
	existing.CourseID = input.CourseID
	existing.Notes = input.Notes
	if input.Status != "" {
		existing.Status = input.Status
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		existing.PasswordHash = string(hash)
	}

	s.syncMembership(id, oldCourseID, existing.CourseID)

	if s.currentUser != nil && s.currentUser.ID == id {
		copied := *existing
		s.currentUser = &copied
		s.mirrorIdentity(ctx)
	}

	s.record(models.ActionUserUpdate, fmt.Sprintf("Updated user: %s", existing.Name), nil)

	updated := *existing
	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// DeleteUser removes the account and cascades: attendance records, projects
// and group messages authored by the user are dropped, the user leaves every
// group roster, and the former course roster is re-synchronized. All effects
// land in a single persisted write. Deleting an absent id returns ErrNotFound
// without mutating anything.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.doc.UserByID(id)
	if user == nil {
		return ErrNotFound
	}
	name := user.Name
	oldCourseID := user.CourseID

	users := s.doc.Users[:0]
	for _, u := range s.doc.Users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	s.doc.Users = users

	attendance := s.doc.Attendance[:0]
	for _, a := range s.doc.Attendance {
		if a.UserID != id {
			attendance = append(attendance, a)
		}
	}
	s.doc.Attendance = attendance

	projects := s.doc.Projects[:0]
	var removedProjects []int64
	for _, p := range s.doc.Projects {
		if p.UserID != id {
			projects = append(projects, p)
		} else {
			removedProjects = append(removedProjects, p.ID)
		}
	}
	s.doc.Projects = projects
	s.dropLikedReferences(removedProjects...)

	messages := s.doc.GroupMessages[:0]
	for _, m := range s.doc.GroupMessages {
		if m.UserID != id {
			messages = append(messages, m)
		}
	}
	s.doc.GroupMessages = messages

	for i := range s.doc.Groups {
		members := s.doc.Groups[i].MemberIDs[:0]
		for _, memberID := range s.doc.Groups[i].MemberIDs {
			if memberID != id {
				members = append(members, memberID)
			}
		}
		s.doc.Groups[i].MemberIDs = members
	}

	s.syncMembership(id, oldCourseID, nil)
	delete(s.activeSessions, id)

	s.record(models.ActionUserDelete, fmt.Sprintf("Deleted user: %s", name), nil)
	return s.persist(ctx)
}

// SyncCourseMembership removes the user from the old course roster and adds
// it to the new one with set semantics, then persists. Either course id may
// be nil or reference a course that no longer exists; both are no-ops.
func (s *Store) SyncCourseMembership(ctx context.Context, userID int64, oldCourseID, newCourseID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncMembership(userID, oldCourseID, newCourseID)
	return s.persist(ctx)
}

// syncMembership mutates the rosters in memory. Callers hold the mutex and
// persist afterwards.
func (s *Store) syncMembership(userID int64, oldCourseID, newCourseID *int64) {
	if oldCourseID != nil {
		if course := s.doc.CourseByID(*oldCourseID); course != nil {
			students := course.Students[:0]
			for _, id := range course.Students {
				if id != userID {
					students = append(students, id)
				}
			}
			course.Students = students
		}
	}
	if newCourseID != nil {
		if course := s.doc.CourseByID(*newCourseID); course != nil && !course.HasStudent(userID) {
			course.Students = append(course.Students, userID)
		}
	}
}

// RegisterFaceDescriptor stores an opaque biometric token for the user, as the
// completion step of a registration capture.
func (s *Store) RegisterFaceDescriptor(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.doc.UserByID(userID)
	if user == nil {
		return "", ErrNotFound
	}

	token := fmt.Sprintf("face_%d_%s", userID, uuid.NewString())
	user.FaceDescriptor = token

	if s.currentUser != nil && s.currentUser.ID == userID {
		copied := *user
		s.currentUser = &copied
		s.mirrorIdentity(ctx)
	}

	s.record(models.ActionFaceRegister, fmt.Sprintf("Registered face descriptor for user %d", userID), nil)
	if err := s.persist(ctx); err != nil {
		return token, err
	}
	return token, nil
}

func (s *Store) checkUserUniqueness(username, email string, selfID int64) error {
	for _, u := range s.doc.Users {
		if u.ID == selfID {
			continue
		}
		if u.Username == username {
			return NewValidationError("username", "already exists")
		}
		if u.Email == email {
			return NewValidationError("email", "already exists")
		}
	}
	return nil
}
