package dto

import "github.com/noah-isme/edupro-go-api/internal/models"

// AttendanceResponse is the public view of an attendance record.
type AttendanceResponse struct {
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
	Verified   bool    `json:"verified"`
}

// NewAttendanceResponse maps an attendance record to its public view.
func NewAttendanceResponse(record models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		CourseID:   record.CourseID,
		Date:       record.Date,
		Time:       record.Time,
		Lat:        record.Lat,
		Lng:        record.Lng,
		Confidence: record.Confidence,
		Status:     record.Status,
		Method:     record.Method,
		Verified:   record.Verified,
	}
}

// NewAttendanceResponses maps a slice of attendance records.
func NewAttendanceResponses(records []models.AttendanceRecord) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewAttendanceResponse(record))
	}
	return out
}

// ScanStatusResponse reports the attendance or registration capture state.
type ScanStatusResponse struct {
	State   string `json:"state"`
	Samples int    `json:"samples"`
	Total   int    `json:"total"`
}
