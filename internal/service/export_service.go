package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

var (
	userExportHeader       = []string{"ID", "Name", "Username", "Email", "Role", "Course ID", "Status", "Created At"}
	attendanceExportHeader = []string{"ID", "User ID", "Course ID", "Date", "Time", "Status", "Confidence", "Latitude", "Longitude"}
)

// ExportService renders portal data as CSV and XLSX downloads.
type ExportService interface {
	UsersCSV(ctx context.Context) ([]byte, error)
	UsersXLSX(ctx context.Context) ([]byte, error)
	AttendanceCSV(ctx context.Context, filter store.AttendanceFilter) ([]byte, error)
	AttendanceXLSX(ctx context.Context, filter store.AttendanceFilter) ([]byte, error)
}

type exportService struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewExportService constructs the export service.
func NewExportService(st *store.Store, logger zerolog.Logger) ExportService {
	return &exportService{
		store:  st,
		logger: logger.With().Str("component", "export_service").Logger(),
	}
}

func (s *exportService) UsersCSV(ctx context.Context) ([]byte, error) {
	users := s.store.ListUsers()
	rows := make([][]string, 0, len(users)+1)
	rows = append(rows, userExportHeader)
	for _, u := range users {
		rows = append(rows, userRow(u))
	}
	data, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	return data, s.recordExport(ctx, models.ActionUserExport, fmt.Sprintf("Exported %d users (CSV)", len(users)))
}

func (s *exportService) UsersXLSX(ctx context.Context) ([]byte, error) {
	users := s.store.ListUsers()
	rows := make([][]string, 0, len(users)+1)
	rows = append(rows, userExportHeader)
	for _, u := range users {
		rows = append(rows, userRow(u))
	}
	data, err := writeXLSX("Users", rows)
	if err != nil {
		return nil, err
	}
	return data, s.recordExport(ctx, models.ActionUserExport, fmt.Sprintf("Exported %d users (XLSX)", len(users)))
}

func (s *exportService) AttendanceCSV(ctx context.Context, filter store.AttendanceFilter) ([]byte, error) {
	records := s.store.ListAttendance(filter)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, attendanceExportHeader)
	for _, r := range records {
		rows = append(rows, attendanceRow(r))
	}
	data, err := writeCSV(rows)
	if err != nil {
		return nil, err
	}
	return data, s.recordExport(ctx, models.ActionAttendExport, fmt.Sprintf("Exported %d attendance records (CSV)", len(records)))
}

func (s *exportService) AttendanceXLSX(ctx context.Context, filter store.AttendanceFilter) ([]byte, error) {
	records := s.store.ListAttendance(filter)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, attendanceExportHeader)
	for _, r := range records {
		rows = append(rows, attendanceRow(r))
	}
	data, err := writeXLSX("Attendance", rows)
	if err != nil {
		return nil, err
	}
	return data, s.recordExport(ctx, models.ActionAttendExport, fmt.Sprintf("Exported %d attendance records (XLSX)", len(records)))
}

func (s *exportService) recordExport(ctx context.Context, action, details string) error {
	if _, err := s.store.Record(ctx, action, details, nil); err != nil && !store.IsPersistence(err) {
		return err
	}
	return nil
}

func userRow(u models.User) []string {
	courseID := ""
	if u.CourseID != nil {
		courseID = strconv.FormatInt(*u.CourseID, 10)
	}
	return []string{
		strconv.FormatInt(u.ID, 10),
		u.Name,
		u.Username,
		u.Email,
		u.Role,
		courseID,
		u.Status,
		u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func attendanceRow(r models.AttendanceRecord) []string {
	courseID := ""
	if r.CourseID != nil {
		courseID = strconv.FormatInt(*r.CourseID, 10)
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		strconv.FormatInt(r.UserID, 10),
		courseID,
		r.Date,
		r.Time,
		r.Status,
		strconv.FormatFloat(r.Confidence, 'f', 2, 64),
		strconv.FormatFloat(r.Lat, 'f', 4, 64),
		strconv.FormatFloat(r.Lng, 'f', 4, 64),
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheet string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
