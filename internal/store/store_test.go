package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/storage"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *memStorage) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return storage.ErrKeyNotFound
	}
	delete(m.data, key)
	return nil
}

// failingStorage reads fine but refuses every write.
type failingStorage struct {
	*memStorage
}

func (f *failingStorage) Put(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), newMemStorage(), zerolog.Nop(), Options{SeedDemoData: true})
	require.NoError(t, err)
	return s
}

func TestOpenSeedsDemoDocument(t *testing.T) {
	s := newTestStore(t)

	require.Len(t, s.ListUsers(), 3)
	require.Len(t, s.ListCourses(), 2)
	require.Len(t, s.ListMaterials(nil), 3)

	meta := s.Metadata()
	require.Equal(t, Version, meta.Version)
	require.Equal(t, 3, meta.TotalUsers)
}

func TestOpenLoadsExistingDocument(t *testing.T) {
	backend := newMemStorage()
	ctx := context.Background()

	first, err := Open(ctx, backend, zerolog.Nop(), Options{SeedDemoData: true})
	require.NoError(t, err)
	_, err = first.CreateCourse(ctx, CourseInput{Code: "CS303", Name: "Compilers", Lecturer: "Prof. Alan Turing"})
	require.NoError(t, err)

	second, err := Open(ctx, backend, zerolog.Nop(), Options{SeedDemoData: true})
	require.NoError(t, err)
	require.Len(t, second.ListCourses(), 3)
}

func TestOpenRecoversFromCorruptPayload(t *testing.T) {
	backend := newMemStorage()
	ctx := context.Background()
	require.NoError(t, backend.Put(ctx, storage.KeyAppData, []byte("{not json")))

	s, err := Open(ctx, backend, zerolog.Nop(), Options{SeedDemoData: true})
	require.NoError(t, err)
	require.Len(t, s.ListUsers(), 3)
}

func TestEnsureIntegrityIsIdempotent(t *testing.T) {
	doc := &models.Document{}
	EnsureIntegrity(doc)

	require.NotNil(t, doc.Users)
	require.NotNil(t, doc.SystemLogs)
	require.NotNil(t, doc.Analytics.DailyActiveUsers)

	before := *doc
	EnsureIntegrity(doc)
	require.Equal(t, before, *doc)
}

func TestAllocateIDIsMonotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Largest seeded id is the welcome message, 9001.
	first, err := s.CreateUser(ctx, UserInput{
		Username: "alice", Password: "password1", Email: "alice@ferretto.edu",
		Name: "Alice", Role: models.RoleStudent,
	})
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, UserInput{
		Username: "bob", Password: "password1", Email: "bob@ferretto.edu",
		Name: "Bob", Role: models.RoleStudent,
	})
	require.NoError(t, err)

	require.Greater(t, first.ID, int64(9001))
	require.Equal(t, first.ID+2, second.ID) // the audit entry takes the id in between
}

func TestMutationSurvivesPersistenceFailure(t *testing.T) {
	backend := newMemStorage()
	ctx := context.Background()
	s, err := Open(ctx, backend, zerolog.Nop(), Options{SeedDemoData: true})
	require.NoError(t, err)

	s.backend = &failingStorage{backend}

	user, err := s.CreateUser(ctx, UserInput{
		Username: "carol", Password: "password1", Email: "carol@ferretto.edu",
		Name: "Carol", Role: models.RoleStudent,
	})
	require.Error(t, err)
	require.True(t, IsPersistence(err))

	// The in-memory document remains authoritative.
	got, getErr := s.GetUser(user.ID)
	require.NoError(t, getErr)
	require.Equal(t, "carol", got.Username)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)

	snapshot, err := s.Snapshot()
	require.NoError(t, err)
	snapshot.Users[0].Username = "mutated"

	got, err := s.GetUser(1)
	require.NoError(t, err)
	require.Equal(t, "admin", got.Username)
}

func TestExportBackupStampsLastBackup(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.ExportBackup(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Metadata.LastBackup)

	logs := s.ListSystemLogs(1, models.ActionBackupExport)
	require.Len(t, logs, 1)
}

func TestRestoreReplacesDocumentAndReseedsIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := models.Document{
		Users: []models.User{{
			ID: 50, Username: "solo", Email: "solo@ferretto.edu",
			Name: "Solo", Role: models.RoleAdmin, Status: models.UserStatusActive,
		}},
	}
	require.NoError(t, s.Restore(ctx, doc))

	require.Len(t, s.ListUsers(), 1)

	course, err := s.CreateCourse(ctx, CourseInput{Code: "CS900", Name: "Restored", Lecturer: "Solo"})
	require.NoError(t, err)
	require.Greater(t, course.ID, int64(50))
}

func TestOptionsNowControlsTimestamps(t *testing.T) {
	fixed := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	s, err := Open(context.Background(), newMemStorage(), zerolog.Nop(), Options{
		SeedDemoData: true,
		Now:          func() time.Time { return fixed },
	})
	require.NoError(t, err)

	course, err := s.CreateCourse(context.Background(), CourseInput{Code: "CS505", Name: "Time", Lecturer: "X"})
	require.NoError(t, err)
	require.Equal(t, fixed, course.CreatedAt)
}
