package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/storage"
)

// DefaultAuditLogCap is the hard cap on retained audit entries.
const DefaultAuditLogCap = 1000

// Options tunes store behaviour. The zero value is usable.
type Options struct {
	AuditLogCap  int
	SeedDemoData bool
	Now          func() time.Time

	// OnPersist, when set, is called after every persistence attempt with
	// the outcome. Used to feed write metrics without coupling the store
	// to a metrics registry.
	OnPersist func(ok bool)
}

// Store owns the single portal document. Every read and mutation goes through
// its methods so the cross-collection invariants are enforced in one place.
// A mutex serializes operations: at most one mutation executes at a time, and
// each mutating call persists the whole document before returning.
type Store struct {
	mu      sync.Mutex
	doc     *models.Document
	backend storage.Storage
	logger  zerolog.Logger
	now     func() time.Time

	auditCap  int
	nextID    int64
	onPersist func(ok bool)

	currentUser    *models.User
	activeSessions map[int64]struct{}
}

// Open loads the document from storage, seeding a default document when none
// exists. A persisted document that fails to parse is replaced by the default
// and the failure is logged, never propagated.
func Open(ctx context.Context, backend storage.Storage, logger zerolog.Logger, opts Options) (*Store, error) {
	s := &Store{
		backend:        backend,
		logger:         logger.With().Str("component", "document_store").Logger(),
		now:            opts.Now,
		auditCap:       opts.AuditLogCap,
		onPersist:      opts.OnPersist,
		activeSessions: map[int64]struct{}{},
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.auditCap <= 0 {
		s.auditCap = DefaultAuditLogCap
	}

	raw, err := backend.Get(ctx, storage.KeyAppData)
	switch {
	case err == nil:
		var doc models.Document
		if unmarshalErr := json.Unmarshal(raw, &doc); unmarshalErr != nil {
			s.logger.Error().Err(unmarshalErr).Msg("stored document failed to parse, falling back to defaults")
			s.doc = s.seed(opts.SeedDemoData)
			if saveErr := s.persist(ctx); saveErr != nil {
				s.logger.Error().Err(saveErr).Msg("failed to persist default document")
			}
		} else {
			s.doc = &doc
			EnsureIntegrity(s.doc)
			s.logger.Info().Msg("loaded existing document")
		}
	case err == storage.ErrKeyNotFound:
		s.doc = s.seed(opts.SeedDemoData)
		if saveErr := s.persist(ctx); saveErr != nil {
			s.logger.Error().Err(saveErr).Msg("failed to persist default document")
		}
		s.logger.Info().Msg("initialized with default document")
	default:
		return nil, err
	}

	s.nextID = maxDocumentID(s.doc) + 1

	return s, nil
}

func (s *Store) seed(demo bool) *models.Document {
	if demo {
		return DefaultDocument(s.now())
	}
	doc := &models.Document{}
	EnsureIntegrity(doc)
	doc.Metadata.Version = Version
	return doc
}

// EnsureIntegrity fills any missing top-level collection with its empty form.
// It is idempotent: applying it twice changes nothing the first pass did not.
func EnsureIntegrity(doc *models.Document) {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Courses == nil {
		doc.Courses = []models.Course{}
	}
	if doc.Materials == nil {
		doc.Materials = []models.Material{}
	}
	if doc.Attendance == nil {
		doc.Attendance = []models.AttendanceRecord{}
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	if doc.Groups == nil {
		doc.Groups = []models.Group{}
	}
	if doc.GroupMessages == nil {
		doc.GroupMessages = []models.GroupMessage{}
	}
	if doc.SystemLogs == nil {
		doc.SystemLogs = []models.SystemLog{}
	}
	if doc.Analytics.DailyActiveUsers == nil {
		doc.Analytics.DailyActiveUsers = map[string]int{}
	}
	if doc.Analytics.AttendanceStats == nil {
		doc.Analytics.AttendanceStats = map[string]int{}
	}
	if doc.Analytics.ProjectStats == nil {
		doc.Analytics.ProjectStats = map[string]int{}
	}
	if doc.Analytics.MaterialDownloads == nil {
		doc.Analytics.MaterialDownloads = map[string]int{}
	}
}

// Save persists the whole document. On failure the in-memory document remains
// authoritative and a PersistenceError is returned for the caller to surface.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// persist serializes and writes the document. Callers hold the mutex.
func (s *Store) persist(ctx context.Context) error {
	s.refreshMetadata()

	raw, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to serialize document")
		s.notifyPersist(false)
		return &PersistenceError{Err: err}
	}
	if err := s.backend.Put(ctx, storage.KeyAppData, raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist document")
		s.notifyPersist(false)
		return &PersistenceError{Err: err}
	}
	s.notifyPersist(true)
	return nil
}

func (s *Store) notifyPersist(ok bool) {
	if s.onPersist != nil {
		s.onPersist(ok)
	}
}

func (s *Store) refreshMetadata() {
	s.doc.Metadata.TotalUsers = len(s.doc.Users)
	s.doc.Metadata.TotalProjects = len(s.doc.Projects)
	s.doc.Metadata.TotalAttendance = len(s.doc.Attendance)
	if s.doc.Metadata.Version == "" {
		s.doc.Metadata.Version = Version
	}
}

// allocateID hands out monotonically increasing ids. Callers hold the mutex.
// The counter is seeded past the largest existing id at load, so rapid
// creations can never collide the way timestamp ids would.
func (s *Store) allocateID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func maxDocumentID(doc *models.Document) int64 {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	for _, u := range doc.Users {
		bump(u.ID)
	}
	for _, c := range doc.Courses {
		bump(c.ID)
	}
	for _, m := range doc.Materials {
		bump(m.ID)
	}
	for _, a := range doc.Attendance {
		bump(a.ID)
	}
	for _, p := range doc.Projects {
		bump(p.ID)
	}
	for _, g := range doc.Groups {
		bump(g.ID)
	}
	for _, m := range doc.GroupMessages {
		bump(m.ID)
	}
	for _, l := range doc.SystemLogs {
		bump(l.ID)
	}
	return max
}

// Snapshot returns a deep copy of the document, for exports and backups.
func (s *Store) Snapshot() (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(s.doc)
	if err != nil {
		return models.Document{}, err
	}
	var copy models.Document
	if err := json.Unmarshal(raw, &copy); err != nil {
		return models.Document{}, err
	}
	return copy, nil
}

// Metadata returns the document bookkeeping block.
func (s *Store) Metadata() models.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshMetadata()
	return s.doc.Metadata
}

// Analytics returns a copy of the usage counters.
func (s *Store) Analytics() models.Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := models.EmptyAnalytics()
	for k, v := range s.doc.Analytics.DailyActiveUsers {
		out.DailyActiveUsers[k] = v
	}
	for k, v := range s.doc.Analytics.AttendanceStats {
		out.AttendanceStats[k] = v
	}
	for k, v := range s.doc.Analytics.ProjectStats {
		out.ProjectStats[k] = v
	}
	for k, v := range s.doc.Analytics.MaterialDownloads {
		out.MaterialDownloads[k] = v
	}
	return out
}

// ExportBackup stamps the backup time, persists, and returns a deep copy of
// the document for the caller to serialize.
func (s *Store) ExportBackup(ctx context.Context) (models.Document, error) {
	s.mu.Lock()

	now := s.now()
	s.doc.Metadata.LastBackup = &now
	s.record(models.ActionBackupExport, "Exported document backup", nil)
	persistErr := s.persist(ctx)
	s.mu.Unlock()

	snapshot, err := s.Snapshot()
	if err != nil {
		return models.Document{}, err
	}
	return snapshot, persistErr
}

// Restore replaces the document with a backup after it has been validated by
// the caller, repairs its shape and persists it.
func (s *Store) Restore(ctx context.Context, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	EnsureIntegrity(&doc)
	s.doc = &doc
	s.nextID = maxDocumentID(s.doc) + 1
	s.record(models.ActionBackupRestore, "Restored document from backup", nil)
	return s.persist(ctx)
}

func (s *Store) dateKey() string {
	return s.now().Format("2006-01-02")
}
