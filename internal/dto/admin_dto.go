package dto

import (
	"time"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// SystemLogResponse is the public view of an audit entry.
type SystemLogResponse struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    *int64    `json:"userId"`
}

// NewSystemLogResponse maps an audit entry to its public view.
func NewSystemLogResponse(entry models.SystemLog) SystemLogResponse {
	return SystemLogResponse{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Action:    entry.Action,
		Details:   entry.Details,
		UserID:    entry.UserID,
	}
}

// NewSystemLogResponses maps a slice of audit entries.
func NewSystemLogResponses(entries []models.SystemLog) []SystemLogResponse {
	out := make([]SystemLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewSystemLogResponse(entry))
	}
	return out
}

// DashboardResponse aggregates the admin dashboard numbers.
type DashboardResponse struct {
	TotalUsers      int                 `json:"totalUsers"`
	TotalCourses    int                 `json:"totalCourses"`
	TotalProjects   int                 `json:"totalProjects"`
	TotalAttendance int                 `json:"totalAttendance"`
	ActiveSessions  int                 `json:"activeSessions"`
	StorageBytes    int                 `json:"storageBytes"`
	RecentActivity  []SystemLogResponse `json:"recentActivity"`
}

// BackupResponse wraps an exported document.
type BackupResponse struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Document   models.Document `json:"document"`
}
