package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/storage"
)

// Login authenticates the credentials against active accounts. On success it
// sets the current identity, joins the active-session set, stamps lastLogin
// and bumps the daily-active counter. On failure the audit trail records a
// LOGIN_FAILED entry with no user id and the error never reveals which
// credential was wrong.
func (s *Store) Login(ctx context.Context, username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *models.User
	for i := range s.doc.Users {
		if s.doc.Users[i].Username == username && s.doc.Users[i].IsActive() {
			user = &s.doc.Users[i]
			break
		}
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(models.ActionLoginFailed, fmt.Sprintf("Failed login attempt for username: %s", username), nil)
		if err := s.persist(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist audit entry for failed login")
		}
		return models.User{}, ErrInvalidCredentials
	}

	now := s.now()
	user.LastLogin = &now
	s.doc.Analytics.DailyActiveUsers[s.dateKey()]++

	copied := *user
	s.currentUser = &copied
	s.activeSessions[user.ID] = struct{}{}
	s.mirrorIdentity(ctx)

	userID := user.ID
	s.record(models.ActionLogin, fmt.Sprintf("User %s logged in", username), &userID)

	if err := s.persist(ctx); err != nil {
		return copied, err
	}
	return copied, nil
}

// Logout clears the current identity and leaves the active-session set. The
// only document mutation is the audit entry.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return nil
	}

	userID := s.currentUser.ID
	s.record(models.ActionLogout, fmt.Sprintf("User %s logged out", s.currentUser.Username), &userID)

	delete(s.activeSessions, userID)
	s.currentUser = nil

	if err := s.backend.Delete(ctx, storage.KeyCurrentIdentity); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted identity")
	}
	return s.persist(ctx)
}

// CurrentUser returns a copy of the logged-in identity, or false when no one
// is logged in.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}

// ActiveSessionCount reports how many identities opened a session within this
// process lifetime. Advisory, dashboard display only.
func (s *Store) ActiveSessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeSessions)
}

// TouchActivity stamps the last-activity key. Callers debounce; every call
// writes.
func (s *Store) TouchActivity(ctx context.Context) error {
	millis := s.now().UnixMilli()
	return s.backend.Put(ctx, storage.KeyLastActivity, []byte(strconv.FormatInt(millis, 10)))
}

// ExpireIfIdle logs the current session out when the last recorded activity
// is older than the timeout. Reports whether an expiry happened.
func (s *Store) ExpireIfIdle(ctx context.Context, timeoutMillis int64) (bool, error) {
	s.mu.Lock()
	current := s.currentUser
	s.mu.Unlock()
	if current == nil {
		return false, nil
	}

	raw, err := s.backend.Get(ctx, storage.KeyLastActivity)
	if err == storage.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	last, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return false, nil
	}

	if s.now().UnixMilli()-last <= timeoutMillis {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return false, nil
	}
	userID := s.currentUser.ID
	s.record(models.ActionSessionExpired, "Session timeout due to inactivity", &userID)
	delete(s.activeSessions, userID)
	s.currentUser = nil
	if err := s.backend.Delete(ctx, storage.KeyCurrentIdentity); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted identity")
	}
	return true, s.persist(ctx)
}

// mirrorIdentity writes the current identity to its storage key. Callers hold
// the mutex.
func (s *Store) mirrorIdentity(ctx context.Context) {
	if s.currentUser == nil {
		return
	}
	raw, err := json.Marshal(s.currentUser)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to serialize identity")
		return
	}
	if err := s.backend.Put(ctx, storage.KeyCurrentIdentity, raw); err != nil {
		s.logger.Warn().Err(err).Msg("failed to mirror identity")
	}
}
