package models

// Document is the single JSON document holding every portal collection. It is
// owned by the store; nothing outside the store package mutates it directly.
type Document struct {
	Users         []User             `json:"users"`
	Courses       []Course           `json:"courses"`
	Materials     []Material         `json:"materials"`
	Attendance    []AttendanceRecord `json:"attendance"`
	Projects      []Project          `json:"projects"`
	Groups        []Group            `json:"groups"`
	GroupMessages []GroupMessage     `json:"groupMessages"`
	SystemLogs    []SystemLog        `json:"systemLogs"`
	Analytics     Analytics          `json:"analytics"`
	Metadata      Metadata           `json:"metadata"`
}

// UserByID returns the user with the given id, or nil when absent.
func (d *Document) UserByID(id int64) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// CourseByID returns the course with the given id, or nil when absent.
func (d *Document) CourseByID(id int64) *Course {
	for i := range d.Courses {
		if d.Courses[i].ID == id {
			return &d.Courses[i]
		}
	}
	return nil
}

// MaterialByID returns the material with the given id, or nil when absent.
func (d *Document) MaterialByID(id int64) *Material {
	for i := range d.Materials {
		if d.Materials[i].ID == id {
			return &d.Materials[i]
		}
	}
	return nil
}

// ProjectByID returns the project with the given id, or nil when absent.
func (d *Document) ProjectByID(id int64) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// GroupByID returns the group with the given id, or nil when absent.
func (d *Document) GroupByID(id int64) *Group {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i]
		}
	}
	return nil
}
