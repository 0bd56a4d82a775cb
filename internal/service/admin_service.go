package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

// backupSchema is the shape a restored backup payload must satisfy before it
// replaces the live document.
const backupSchema = `{
  "type": "object",
  "required": ["users", "courses", "metadata"],
  "properties": {
    "users": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "username", "role"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "username": {"type": "string", "minLength": 1},
          "role": {"enum": ["admin", "lecturer", "student"]}
        }
      }
    },
    "courses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "code"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "code": {"type": "string", "minLength": 1}
        }
      }
    },
    "metadata": {
      "type": "object",
      "required": ["version"],
      "properties": {
        "version": {"type": "string"}
      }
    }
  }
}`

// AdminService exposes the dashboard, the audit trail, and backup handling.
type AdminService interface {
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
	SystemLogs(ctx context.Context, limit int, action string) ([]dto.SystemLogResponse, error)
	ExportBackup(ctx context.Context) (dto.BackupResponse, error)
	RestoreBackup(ctx context.Context, payload []byte) error
}

type adminService struct {
	store  *store.Store
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// NewAdminService constructs the admin service. Panics if the embedded backup
// schema does not compile, which only happens on a build error.
func NewAdminService(st *store.Store, logger zerolog.Logger) AdminService {
	schema := jsonschema.MustCompileString("backup.json", backupSchema)
	return &adminService{
		store:  st,
		schema: schema,
		logger: logger.With().Str("component", "admin_service").Logger(),
	}
}

const recentActivityCount = 8

func (s *adminService) Dashboard(ctx context.Context) (dto.DashboardResponse, error) {
	doc, err := s.store.Snapshot()
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	return dto.DashboardResponse{
		TotalUsers:      len(doc.Users),
		TotalCourses:    len(doc.Courses),
		TotalProjects:   len(doc.Projects),
		TotalAttendance: len(doc.Attendance),
		ActiveSessions:  s.store.ActiveSessionCount(),
		StorageBytes:    len(raw),
		RecentActivity:  dto.NewSystemLogResponses(s.store.ListSystemLogs(recentActivityCount, "")),
	}, nil
}

func (s *adminService) SystemLogs(ctx context.Context, limit int, action string) ([]dto.SystemLogResponse, error) {
	return dto.NewSystemLogResponses(s.store.ListSystemLogs(limit, action)), nil
}

func (s *adminService) ExportBackup(ctx context.Context) (dto.BackupResponse, error) {
	doc, err := s.store.ExportBackup(ctx)
	if err != nil && !store.IsPersistence(err) {
		return dto.BackupResponse{}, err
	}
	exportedAt := time.Now()
	if doc.Metadata.LastBackup != nil {
		exportedAt = *doc.Metadata.LastBackup
	}
	return dto.BackupResponse{ExportedAt: exportedAt, Document: doc}, err
}

// RestoreBackup validates the payload against the backup schema, then swaps
// the live document for it. Collections the payload omits are re-initialised
// empty.
func (s *adminService) RestoreBackup(ctx context.Context, payload []byte) error {
	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil {
		return store.NewValidationError("backup", "payload is not valid JSON")
	}
	if err := s.schema.Validate(probe); err != nil {
		return store.NewValidationError("backup", err.Error())
	}

	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return store.NewValidationError("backup", "payload does not match the document shape")
	}
	s.logger.Info().Int("users", len(doc.Users)).Int("courses", len(doc.Courses)).Msg("restoring backup")
	return s.store.Restore(ctx, doc)
}
