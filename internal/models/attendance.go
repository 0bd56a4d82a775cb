package models

// Attendance record statuses.
const (
	AttendanceStatusPresent = "Present"
	AttendanceStatusAbsent  = "Absent"
	AttendanceStatusLate    = "Late"
)

// AttendanceRecord captures a single verified attendance event. Date and Time
// keep the portal's display formats (YYYY-MM-DD and HH:MM:SS).
type AttendanceRecord struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	CourseID   *int64  `json:"courseId"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
	Method     string  `json:"method"`
	Notes      string  `json:"notes,omitempty"`
	Verified   bool    `json:"verified"`
	Device     string  `json:"device,omitempty"`
}

// IsPresent reports whether the record marks the user present.
func (a AttendanceRecord) IsPresent() bool {
	return a.Status == AttendanceStatusPresent
}
