package store

import (
	"context"
	"fmt"
	"math"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// AttendanceInput carries the capture result that becomes a record. The
// course is taken from the user's current assignment.
type AttendanceInput struct {
	UserID     int64
	Lat        float64
	Lng        float64
	Confidence float64
	Method     string
	Device     string
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	UserID   *int64
	CourseID *int64
	Date     string
}

// ListAttendance returns records matching the filter, newest last (insertion
// order).
func (s *Store) ListAttendance(filter AttendanceFilter) []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AttendanceRecord, 0, len(s.doc.Attendance))
	for _, a := range s.doc.Attendance {
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		if filter.CourseID != nil && (a.CourseID == nil || *a.CourseID != *filter.CourseID) {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, a)
	}
	return out
}

// HasMarkedToday reports whether the user already has a Present record for
// the current date.
func (s *Store) HasMarkedToday(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.dateKey()
	for _, a := range s.doc.Attendance {
		if a.UserID == userID && a.Date == today && a.IsPresent() {
			return true
		}
	}
	return false
}

// MarkAttendance records a verified Present entry for the user from a
// completed face scan.
func (s *Store) MarkAttendance(ctx context.Context, input AttendanceInput) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.doc.UserByID(input.UserID)
	if user == nil {
		return models.AttendanceRecord{}, ErrNotFound
	}

	now := s.now()
	record := models.AttendanceRecord{
		ID:         s.allocateID(),
		UserID:     input.UserID,
		CourseID:   user.CourseID,
		Date:       now.Format("2006-01-02"),
		Time:       now.Format("15:04:05"),
		Lat:        input.Lat,
		Lng:        input.Lng,
		Confidence: math.Round(input.Confidence*100) / 100,
		Status:     models.AttendanceStatusPresent,
		Method:     input.Method,
		Notes:      "Automated face verification",
		Verified:   true,
		Device:     input.Device,
	}

	s.doc.Attendance = append(s.doc.Attendance, record)
	s.doc.Analytics.AttendanceStats[record.Date]++

	userID := input.UserID
	s.record(models.ActionAttendance,
		fmt.Sprintf("Marked attendance with %d%% confidence", int(math.Round(input.Confidence*100))), &userID)

	if err := s.persist(ctx); err != nil {
		return record, err
	}
	return record, nil
}

// AttendanceRate returns the user's Present ratio in percent.
func (s *Store) AttendanceRate(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, present := 0, 0
	for _, a := range s.doc.Attendance {
		if a.UserID != userID {
			continue
		}
		total++
		if a.IsPresent() {
			present++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
