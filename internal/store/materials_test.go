package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

func TestListMaterialsFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	general, err := s.CreateMaterial(ctx, MaterialInput{
		Title: "Student Handbook", Type: models.MaterialTypePDF, Content: "https://example.com/handbook.pdf",
	})
	require.NoError(t, err)

	require.Len(t, s.ListMaterials(nil), 4)

	forCourse := s.ListMaterials(courseID(101))
	require.Len(t, forCourse, 3)

	generalOnly := s.ListMaterials(courseID(0))
	require.Len(t, generalOnly, 1)
	require.Equal(t, general.ID, generalOnly[0].ID)
}

func TestCreateMaterialValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateMaterial(ctx, MaterialInput{Title: "Bad", Type: "exe", Content: "x"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "type", ve.Field)

	_, err = s.CreateMaterial(ctx, MaterialInput{
		Title: "Orphan", Type: models.MaterialTypePDF, Content: "x", CourseID: courseID(999),
	})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "courseId", ve.Field)
}

func TestIncrementDownloads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := s.SystemLogCount()
	material, err := s.IncrementDownloads(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, material.Downloads)

	_, err = s.IncrementDownloads(ctx, 1)
	require.NoError(t, err)

	analytics := s.Analytics()
	require.Equal(t, 2, analytics.MaterialDownloads["1"])

	require.Equal(t, before+2, s.SystemLogCount())
	logs := s.ListSystemLogs(0, models.ActionMaterialDownload)
	require.Len(t, logs, 2)
	require.Contains(t, logs[0].Details, material.Title)
}

func TestIncrementDownloadsAuditSurvivesPersistenceFailure(t *testing.T) {
	s := newTestStore(t)
	s.backend = &failingStorage{newMemStorage()}

	_, err := s.IncrementDownloads(context.Background(), 1)
	require.True(t, IsPersistence(err))

	logs := s.ListSystemLogs(0, models.ActionMaterialDownload)
	require.Len(t, logs, 1)
}

func TestDeleteMaterial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteMaterial(ctx, 3))
	_, err := s.GetMaterial(3)
	require.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteMaterial(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)
}
