package models

import "time"

// Analytics aggregates usage counters keyed by day or entity id.
type Analytics struct {
	DailyActiveUsers  map[string]int `json:"dailyActiveUsers"`
	AttendanceStats   map[string]int `json:"attendanceStats"`
	ProjectStats      map[string]int `json:"projectStats"`
	MaterialDownloads map[string]int `json:"materialDownloads"`
}

// EmptyAnalytics returns an analytics block with every counter map allocated.
func EmptyAnalytics() Analytics {
	return Analytics{
		DailyActiveUsers:  map[string]int{},
		AttendanceStats:   map[string]int{},
		ProjectStats:      map[string]int{},
		MaterialDownloads: map[string]int{},
	}
}

// Metadata carries document-level bookkeeping refreshed on every save.
type Metadata struct {
	Version         string     `json:"version"`
	LastBackup      *time.Time `json:"lastBackup"`
	TotalUsers      int        `json:"totalUsers"`
	TotalProjects   int        `json:"totalProjects"`
	TotalAttendance int        `json:"totalAttendance"`
}
