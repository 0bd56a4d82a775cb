package models

import "time"

// Audit actions recorded by the portal. Free-form tags are allowed; these are
// the ones the system itself emits.
const (
	ActionLogin            = "LOGIN"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionLogout           = "LOGOUT"
	ActionSessionExpired   = "SESSION_EXPIRED"
	ActionUserCreate       = "USER_CREATE"
	ActionUserUpdate       = "USER_UPDATE"
	ActionUserDelete       = "USER_DELETE"
	ActionUserExport       = "USER_EXPORT"
	ActionCourseCreate     = "COURSE_CREATE"
	ActionCourseUpdate     = "COURSE_UPDATE"
	ActionCourseDelete     = "COURSE_DELETE"
	ActionMaterialCreate   = "MATERIAL_CREATE"
	ActionMaterialUpdate   = "MATERIAL_UPDATE"
	ActionMaterialDelete   = "MATERIAL_DELETE"
	ActionMaterialDownload = "MATERIAL_DOWNLOAD"
	ActionAttendance       = "ATTENDANCE"
	ActionAttendExport     = "ATTENDANCE_EXPORT"
	ActionProjectSave      = "PROJECT_SAVE"
	ActionProjectDelete    = "PROJECT_DELETE"
	ActionProjectFork      = "PROJECT_FORK"
	ActionGroupCreate      = "GROUP_CREATE"
	ActionGroupUpdate      = "GROUP_UPDATE"
	ActionGroupChat        = "GROUP_CHAT"
	ActionFaceRegister     = "FACE_REGISTER"
	ActionBackupExport     = "BACKUP_EXPORT"
	ActionBackupRestore    = "BACKUP_RESTORE"
)

// SystemLog is a single append-only audit trail entry. UserID is nil when no
// identity was resolved, e.g. a failed login.
type SystemLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    *int64    `json:"userId"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}
