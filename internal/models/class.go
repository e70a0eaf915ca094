package models

import "strconv"

// ClassStudent is one roster entry of a class.
type ClassStudent struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

// Class is a teaching group. CourseID and TeacherID are the backend's legacy
// single-subject fields; richer configuration lives in ClassSubjectSetup.
type Class struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	IsActive       bool           `json:"isActive"`
	Semester       int            `json:"semester"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	CourseID       *int64         `json:"courseId"`
	CourseName     string         `json:"courseName"`
	TeacherID      *string        `json:"teacherId"`
	TeacherName    string         `json:"teacherName"`
	StudentCount   int            `json:"studentCount"`
	DepartmentID   int64          `json:"departmentId"`
	DepartmentName string         `json:"departmentName"`
	Students       []ClassStudent `json:"students"`
}

// StudentIDs returns the roster ids in roster order.
func (c Class) StudentIDs() []string {
	ids := make([]string, 0, len(c.Students))
	for _, s := range c.Students {
		ids = append(ids, s.StudentID)
	}
	return ids
}

// Key is the override store key for the class.
func (c Class) Key() string {
	return strconv.FormatInt(c.ID, 10)
}
