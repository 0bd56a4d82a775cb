package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// Version stamps new documents.
const Version = "3.0.1"

// Demo credentials seeded on first run. Hashed before they ever hit storage.
const (
	demoAdminPassword    = "admin12345"
	demoStudentPassword  = "student123"
	demoLecturerPassword = "lecturer123"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// GenerateFromPassword only fails on an out-of-range cost.
		panic(err)
	}
	return string(hash)
}

func courseID(id int64) *int64 {
	return &id
}

// DefaultDocument builds the seeded demo dataset used on first run: three
// demo accounts, two courses, three materials, one attendance record, one
// shared project and one group with a welcome message.
func DefaultDocument(now time.Time) *models.Document {
	seeded := time.Date(2023, time.September, 1, 9, 0, 0, 0, time.UTC)

	doc := &models.Document{
		Users: []models.User{
			{
				ID:           1,
				Username:     "admin",
				PasswordHash: mustHash(demoAdminPassword),
				Email:        "admin@ferretto.edu",
				Name:         "System Administrator",
				Role:         models.RoleAdmin,
				Status:       models.UserStatusActive,
				Notes:        "System administrator account",
				CreatedAt:    seeded,
			},
			{
				ID:           2,
				Username:     "student",
				PasswordHash: mustHash(demoStudentPassword),
				Email:        "student@ferretto.edu",
				Name:         "John Student",
				Role:         models.RoleStudent,
				CourseID:     courseID(101),
				Status:       models.UserStatusActive,
				Notes:        "Demo student account",
				CreatedAt:    seeded,
			},
			{
				ID:           3,
				Username:     "lecturer",
				PasswordHash: mustHash(demoLecturerPassword),
				Email:        "lecturer@ferretto.edu",
				Name:         "Dr. Sarah Connor",
				Role:         models.RoleLecturer,
				CourseID:     courseID(101),
				Status:       models.UserStatusActive,
				Notes:        "Demo lecturer account",
				CreatedAt:    seeded,
			},
		},
		Courses: []models.Course{
			{
				ID:          101,
				Code:        "CS101",
				Name:        "Introduction to Web Development",
				Lecturer:    "Dr. Sarah Connor",
				Schedule:    "Mon, Wed 09:00 AM",
				Credits:     3,
				Description: "Comprehensive introduction to HTML, CSS, and JavaScript. Learn to build modern responsive websites.",
				Students:    []int64{2},
				Materials:   []int64{1, 2},
				CreatedAt:   seeded,
			},
			{
				ID:          102,
				Code:        "CS202",
				Name:        "Data Structures & Algorithms",
				Lecturer:    "Prof. Alan Turing",
				Schedule:    "Tue, Thu 11:00 AM",
				Credits:     4,
				Description: "Advanced study of data structures, algorithms, and computational complexity.",
				Students:    []int64{},
				Materials:   []int64{},
				CreatedAt:   seeded,
			},
		},
		Materials: []models.Material{
			{
				ID:          1,
				CourseID:    courseID(101),
				Title:       "HTML5 Complete Guide",
				Type:        models.MaterialTypePDF,
				Content:     "https://example.com/html5-guide.pdf",
				Description: "Complete reference guide for HTML5 elements and APIs.",
				FileSize:    "2.4 MB",
				Tags:        []string{"html", "web", "beginners"},
				Author:      "Dr. Sarah Connor",
				CreatedAt:   seeded,
			},
			{
				ID:          2,
				CourseID:    courseID(101),
				Title:       "CSS Flexbox Examples",
				Type:        models.MaterialTypeCode,
				Content:     ".container {\n  display: flex;\n  justify-content: center;\n  align-items: center;\n}\n\n.item {\n  flex: 1;\n  margin: 10px;\n}",
				Description: "Practical examples of CSS Flexbox layouts.",
				FileSize:    "15 KB",
				Tags:        []string{"css", "layout", "flexbox"},
				Language:    "css",
				Author:      "Dr. Sarah Connor",
				CreatedAt:   seeded,
			},
			{
				ID:          3,
				CourseID:    courseID(101),
				Title:       "JavaScript Basics Tutorial",
				Type:        models.MaterialTypeLink,
				Content:     "https://developer.mozilla.org/en-US/docs/Web/JavaScript",
				Description: "MDN Web Docs JavaScript tutorial for beginners.",
				FileSize:    "N/A",
				Tags:        []string{"javascript", "tutorial", "mdn"},
				Author:      "Dr. Sarah Connor",
				CreatedAt:   seeded,
			},
		},
		Attendance: []models.AttendanceRecord{
			{
				ID:         1,
				UserID:     2,
				CourseID:   courseID(101),
				Date:       now.Format("2006-01-02"),
				Time:       "09:05:22",
				Lat:        40.7128,
				Lng:        -74.0060,
				Confidence: 0.94,
				Status:     models.AttendanceStatusPresent,
				Method:     "Face Scan",
				Notes:      "On time",
				Verified:   true,
			},
		},
		Projects: []models.Project{
			{
				ID:          1,
				UserID:      2,
				Name:        "My First Website",
				Description: "A simple responsive website with modern design",
				Code:        demoProjectCode,
				Visibility:  models.ProjectVisibilityPublic,
				Category:    "web",
				Tags:        []string{"html", "css", "javascript", "beginners"},
				Likes:       5,
				Views:       42,
				Forks:       3,
				CreatedAt:   seeded,
				UpdatedAt:   seeded,
			},
		},
		Groups: []models.Group{
			{
				ID:          1001,
				Name:        "Frontend Builders",
				Description: "Share UI ideas, snippets, and layout feedback.",
				CreatedBy:   1,
				MemberIDs:   []int64{1, 2, 3},
				CreatedAt:   seeded,
				UpdatedAt:   seeded,
			},
		},
		GroupMessages: []models.GroupMessage{
			{
				ID:        9001,
				GroupID:   1001,
				UserID:    1,
				Content:   "Welcome team! Share HTML/CSS snippets using ``` for code blocks.",
				CreatedAt: seeded,
			},
		},
		SystemLogs: []models.SystemLog{},
		Analytics:  models.EmptyAnalytics(),
		Metadata: models.Metadata{
			Version:         Version,
			TotalUsers:      3,
			TotalProjects:   1,
			TotalAttendance: 1,
		},
	}

	return doc
}

const demoProjectCode = `<!DOCTYPE html>
<html>
<head>
  <title>My Website</title>
</head>
<body>
  <div class="container">
    <h1>Welcome to My Website!</h1>
    <p>This is my first web project.</p>
    <button onclick="alert('Hello!')">Click Me!</button>
  </div>
</body>
</html>`
