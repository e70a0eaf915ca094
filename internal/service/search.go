package service

import (
	"strconv"
	"strings"

	"github.com/noah-isme/sma-console-gateway/internal/models"
)

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// FilterJoined keeps rows whose fields, joined by spaces and lowercased,
// contain the query. A blank query keeps everything.
func FilterJoined[T any](rows []T, query string, fields func(T) []string) []T {
	q := normalizeQuery(query)
	if q == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(strings.Join(fields(row), " ")), q) {
			out = append(out, row)
		}
	}
	return out
}

// FilterAny keeps rows where at least one field contains the query.
func FilterAny[T any](rows []T, query string, fields func(T) []string) []T {
	q := normalizeQuery(query)
	if q == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, f := range fields(row) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func classSearchFields(s models.ClassSummary) []string {
	return []string{
		s.Class.Name,
		s.Class.DepartmentName,
		strconv.Itoa(s.Class.Semester),
		s.SubjectsLabel,
		s.TeachersLabel,
		s.SetupLabel,
		strconv.Itoa(s.StudentsCount),
	}
}

func courseSearchFields(s models.CourseSummary) []string {
	return []string{
		strconv.FormatInt(s.Course.ID, 10),
		s.Course.Code,
		s.Course.Name,
		s.Course.DepartmentName,
		s.TeachersLabel,
		s.ClassesLabel,
	}
}

func assignmentSearchFields(a models.Assignment) []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.Title,
		a.ClassName,
		a.CourseName,
		a.TeacherName,
		a.DueDate,
	}
}

func departmentSearchFields(d models.Department) []string {
	return []string{d.Name, d.Description, d.HeadDepartmentName, d.HeadDepartmentID}
}

func userSearchFields(u models.User) []string {
	return []string{u.ID, u.UserName, u.Name, u.Email}
}

func studentRowSearchFields(r models.StudentRow) []string {
	return []string{r.User.ID, r.User.UserName, r.User.Name, r.User.Email, r.SemesterLabel, r.SubjectsLabel, r.TeachersLabel, r.ClassesLabel}
}

// Screen-specific filters.

func SearchClasses(rows []models.ClassSummary, q string) []models.ClassSummary {
	return FilterJoined(rows, q, classSearchFields)
}

func SearchCourses(rows []models.CourseSummary, q string) []models.CourseSummary {
	return FilterJoined(rows, q, courseSearchFields)
}

func SearchAssignments(rows []models.Assignment, q string) []models.Assignment {
	return FilterJoined(rows, q, assignmentSearchFields)
}

func SearchDepartments(rows []models.Department, q string) []models.Department {
	return FilterAny(rows, q, departmentSearchFields)
}

func SearchUsers(rows []models.User, q string) []models.User {
	return FilterAny(rows, q, userSearchFields)
}

func SearchStudents(rows []models.StudentRow, q string) []models.StudentRow {
	return FilterJoined(rows, q, studentRowSearchFields)
}
