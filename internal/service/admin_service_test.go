package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/store"
)

func newAdminService(t *testing.T) (AdminService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewAdminService(st, zerolog.Nop()), st
}

func TestDashboardCountsSeededDocument(t *testing.T) {
	svc, _ := newAdminService(t)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, dash.TotalUsers)
	require.Equal(t, 2, dash.TotalCourses)
	require.Equal(t, 1, dash.TotalProjects)
	require.Equal(t, 1, dash.TotalAttendance)
	require.Positive(t, dash.StorageBytes)
}

func TestExportBackupStampsTimestamp(t *testing.T) {
	svc, _ := newAdminService(t)

	backup, err := svc.ExportBackup(context.Background())
	require.NoError(t, err)
	require.False(t, backup.ExportedAt.IsZero())
	require.Len(t, backup.Document.Users, 3)
}

func TestRestoreBackupRejectsGarbage(t *testing.T) {
	svc, _ := newAdminService(t)

	err := svc.RestoreBackup(context.Background(), []byte("not json at all"))

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "backup", verr.Field)
}

func TestRestoreBackupRejectsSchemaViolations(t *testing.T) {
	svc, _ := newAdminService(t)

	payload := []byte(`{
		"users": [{"id": 1, "username": "root", "role": "superuser"}],
		"courses": [],
		"metadata": {"version": "3.0.1"}
	}`)
	err := svc.RestoreBackup(context.Background(), payload)

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "backup", verr.Field)
}

func TestRestoreBackupReplacesDocument(t *testing.T) {
	svc, st := newAdminService(t)
	ctx := context.Background()

	backup, err := svc.ExportBackup(ctx)
	require.NoError(t, err)

	doc := backup.Document
	doc.Users = doc.Users[:1]
	doc.Projects = nil
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	require.NoError(t, svc.RestoreBackup(ctx, payload))

	restored, err := st.Snapshot()
	require.NoError(t, err)
	require.Len(t, restored.Users, 1)
	require.Empty(t, restored.Projects)
}
