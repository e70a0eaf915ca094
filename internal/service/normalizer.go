package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// Normalizer turns backend wire shapes into view models. Optional fields get
// empty defaults; a missing id or name is a mapping error.
type Normalizer struct {
	lookup *NameLookup
	now    func() time.Time
}

// NewNormalizer constructs a normalizer reading names from lookup.
func NewNormalizer(lookup *NameLookup) *Normalizer {
	if lookup == nil {
		lookup = NewNameLookup()
	}
	return &Normalizer{lookup: lookup, now: time.Now}
}

func mappingError(entity, field string) error {
	return appErrors.Clone(appErrors.ErrMapping, fmt.Sprintf("%s payload is missing %s", entity, field))
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func firstNonNil(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

func mapAll[D any, M any](items []D, fn func(D) (M, error)) ([]M, error) {
	out := make([]M, 0, len(items))
	for _, item := range items {
		mapped, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}
	return out, nil
}

// User maps a managed user account; id and name are required.
func (n *Normalizer) User(d dto.ManagedUserDTO) (models.User, error) {
	if d.ID == nil || *d.ID == "" {
		return models.User{}, mappingError("user", "id")
	}
	if d.Name == nil {
		return models.User{}, mappingError("user", "name")
	}
	return models.User{
		ID:          *d.ID,
		UserName:    d.UserName,
		Name:        *d.Name,
		Email:       d.Email,
		Role:        models.ParseRole(d.Role),
		IsActive:    d.IsActive,
		CreatedDate: d.CreatedDate,
	}, nil
}

// Users maps a user listing, failing on the first malformed row.
func (n *Normalizer) Users(items []dto.ManagedUserDTO) ([]models.User, error) {
	return mapAll(items, n.User)
}

// Department maps a department. The head fields accept either backend spelling.
func (n *Normalizer) Department(d dto.DepartmentDTO) (models.Department, error) {
	if d.ID == nil {
		return models.Department{}, mappingError("department", "id")
	}
	if d.Name == nil {
		return models.Department{}, mappingError("department", "name")
	}
	return models.Department{
		ID:                 *d.ID,
		Name:               *d.Name,
		Description:        str(d.Description),
		HeadDepartmentID:   firstNonNil(d.HeadOfDepartmentID, d.HeadDepartmentID),
		HeadDepartmentName: firstNonNil(d.HeadOfDepartmentName, d.HeadDepartmentName, d.HeadName),
		IsActive:           true,
	}, nil
}

// Departments maps a department listing.
func (n *Normalizer) Departments(items []dto.DepartmentDTO) ([]models.Department, error) {
	return mapAll(items, n.Department)
}

// Course resolves the department name from the lookup tables.
func (n *Normalizer) Course(d dto.CourseDTO) (models.Course, error) {
	if d.ID == nil {
		return models.Course{}, mappingError("course", "id")
	}
	if d.Name == nil {
		return models.Course{}, mappingError("course", "name")
	}
	deptName, _ := n.lookup.DepartmentName(d.DepartmentID)
	return models.Course{
		ID:             *d.ID,
		Name:           *d.Name,
		Code:           d.Code,
		Description:    str(d.Description),
		Credits:        d.Credits.Int(),
		DepartmentID:   d.DepartmentID,
		DepartmentName: deptName,
		IsActive:       true,
	}, nil
}

// Courses maps the admin course listing.
func (n *Normalizer) Courses(items []dto.CourseDTO) ([]models.Course, error) {
	return mapAll(items, n.Course)
}

// ManageableCourse maps a course row that already carries its department name.
func (n *Normalizer) ManageableCourse(d dto.ManageableCourseDTO) (models.Course, error) {
	if d.ID == nil {
		return models.Course{}, mappingError("course", "id")
	}
	if d.Name == nil {
		return models.Course{}, mappingError("course", "name")
	}
	return models.Course{
		ID:             *d.ID,
		Name:           *d.Name,
		Code:           d.Code,
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		IsActive:       true,
	}, nil
}

// ManageableCourses maps the courses the caller may assign.
func (n *Normalizer) ManageableCourses(items []dto.ManageableCourseDTO) ([]models.Course, error) {
	return mapAll(items, n.ManageableCourse)
}

// ManagedClass maps a management class. A missing course name is taken from
// the lookup, or becomes "Course #<id>" when the course is unknown.
func (n *Normalizer) ManagedClass(d dto.ManagedClassDTO) (models.Class, error) {
	if d.ID == nil {
		return models.Class{}, mappingError("class", "id")
	}
	if d.Name == nil {
		return models.Class{}, mappingError("class", "name")
	}

	students := make([]models.ClassStudent, 0, len(d.Students))
	for _, s := range d.Students {
		students = append(students, models.ClassStudent{StudentID: s.StudentID, StudentName: s.StudentName})
	}

	courseName := str(d.CourseName)
	if d.CourseName == nil && d.CourseID != nil && *d.CourseID != 0 {
		if name, ok := n.lookup.CourseName(*d.CourseID); ok {
			courseName = name
		} else {
			courseName = fmt.Sprintf("Course #%d", *d.CourseID)
		}
	}

	return models.Class{
		ID:             *d.ID,
		Name:           *d.Name,
		IsActive:       d.IsActive,
		Semester:       d.Semester.Int(),
		StartDate:      str(d.StartDate),
		EndDate:        str(d.EndDate),
		CourseID:       d.CourseID,
		CourseName:     courseName,
		TeacherID:      d.TeacherID,
		TeacherName:    str(d.TeacherName),
		StudentCount:   len(students),
		DepartmentID:   d.DepartmentID,
		DepartmentName: str(d.DepartmentName),
		Students:       students,
	}, nil
}

// ManagedClasses maps a management class listing.
func (n *Normalizer) ManagedClasses(items []dto.ManagedClassDTO) ([]models.Class, error) {
	return mapAll(items, n.ManagedClass)
}

// StudentClass maps an enrolled-class row seen from a student session. The
// student view carries no roster or legacy course id.
func (n *Normalizer) StudentClass(d dto.StudentClassDTO) (models.Class, error) {
	if d.ClassID == nil {
		return models.Class{}, mappingError("class", "classId")
	}
	return models.Class{
		ID:             *d.ClassID,
		Name:           str(d.ClassName),
		IsActive:       true,
		Semester:       d.Semester.Int(),
		StartDate:      str(d.StartDate),
		EndDate:        str(d.EndDate),
		CourseName:     str(d.CourseName),
		TeacherName:    str(d.TeacherName),
		DepartmentID:   d.DepartmentID,
		DepartmentName: str(d.DepartmentName),
		Students:       []models.ClassStudent{},
	}, nil
}

// StudentClasses maps the classes a student is enrolled in.
func (n *Normalizer) StudentClasses(items []dto.StudentClassDTO) ([]models.Class, error) {
	return mapAll(items, n.StudentClass)
}

// ManagedAssignment maps a teacher-side assignment. A missing class name
// becomes "Class #<id>".
func (n *Normalizer) ManagedAssignment(d dto.ManagedAssignmentDTO) (models.Assignment, error) {
	if d.ID == nil {
		return models.Assignment{}, mappingError("assignment", "id")
	}
	if d.Title == nil {
		return models.Assignment{}, mappingError("assignment", "title")
	}
	className := str(d.ClassName)
	if d.ClassName == nil {
		className = fmt.Sprintf("Class #%d", d.ClassID)
	}
	return models.Assignment{
		ID:          *d.ID,
		Title:       *d.Title,
		Description: str(d.Description),
		DueDate:     str(d.DueDate),
		ClassID:     d.ClassID,
		ClassName:   className,
		CourseName:  str(d.CourseName),
		TeacherID:   d.CreatedByTeacherID,
		TeacherName: str(d.TeacherName),
		CreatedAt:   d.CreatedDate,
	}, nil
}

// ManagedAssignments maps a teacher-side assignment listing.
func (n *Normalizer) ManagedAssignments(items []dto.ManagedAssignmentDTO) ([]models.Assignment, error) {
	return mapAll(items, n.ManagedAssignment)
}

// StudentAssignment maps an assignment as the student sees it.
func (n *Normalizer) StudentAssignment(d dto.StudentAssignmentDTO) (models.Assignment, error) {
	if d.AssignmentID == nil {
		return models.Assignment{}, mappingError("assignment", "assignmentId")
	}
	if d.Title == nil {
		return models.Assignment{}, mappingError("assignment", "title")
	}
	return models.Assignment{
		ID:          *d.AssignmentID,
		Title:       *d.Title,
		Description: str(d.Description),
		DueDate:     str(d.DueDate),
		ClassName:   str(d.ClassName),
	}, nil
}

// StudentAssignments maps the caller's assignment listing.
func (n *Normalizer) StudentAssignments(items []dto.StudentAssignmentDTO) ([]models.Assignment, error) {
	return mapAll(items, n.StudentAssignment)
}

// GradingRows maps the per-student grading rows of one assignment.
func (n *Normalizer) GradingRows(assignmentID int64, items []dto.AssignmentStudentGradeDTO) ([]models.AssignmentSubmission, error) {
	return mapAll(items, func(d dto.AssignmentStudentGradeDTO) (models.AssignmentSubmission, error) {
		if d.StudentID == "" {
			return models.AssignmentSubmission{}, mappingError("grading row", "studentId")
		}
		return models.AssignmentSubmission{
			AssignmentID:       assignmentID,
			StudentID:          d.StudentID,
			StudentName:        d.StudentName,
			SubmittedAt:        str(d.SubmittedDate),
			Grade:              d.Grade,
			Remarks:            str(d.Remarks),
			IsVisibleToStudent: d.IsVisibleToStudent,
		}, nil
	})
}

// StudentGrades maps the caller's own grades.
func (n *Normalizer) StudentGrades(caller models.User, items []dto.StudentGradeDTO) []models.AssignmentSubmission {
	out := make([]models.AssignmentSubmission, 0, len(items))
	for _, d := range items {
		out = append(out, models.AssignmentSubmission{
			ID:              d.AssignmentID,
			AssignmentID:    d.AssignmentID,
			AssignmentTitle: str(d.AssignmentTitle),
			ClassName:       str(d.ClassName),
			CourseName:      str(d.CourseName),
			StudentID:       caller.ID,
			StudentName:     caller.Name,
			SubmittedAt:     str(d.SubmittedDate),
			Grade:           d.Grade,
			Remarks:         str(d.Remarks),
		})
	}
	return out
}

// ClassAttendance maps the attendance rows recorded for one class.
func (n *Normalizer) ClassAttendance(classID int64, items []dto.TeacherAttendanceDTO) []models.Attendance {
	out := make([]models.Attendance, 0, len(items))
	for _, d := range items {
		out = append(out, models.Attendance{
			ClassID:     classID,
			ClassName:   fmt.Sprintf("Class #%d", classID),
			StudentID:   str(d.StudentID),
			StudentName: str(d.StudentName),
			Date:        str(d.Date),
			Status:      models.AttendanceStatus(d.Status),
		})
	}
	return out
}

// StudentAttendance maps the caller's own attendance; rows are named after them.
func (n *Normalizer) StudentAttendance(caller models.User, items []dto.StudentAttendanceDTO) []models.Attendance {
	name := caller.Name
	if name == "" {
		name = "You"
	}
	out := make([]models.Attendance, 0, len(items))
	for _, d := range items {
		out = append(out, models.Attendance{
			ClassID:     d.ClassID,
			ClassName:   str(d.ClassName),
			StudentID:   caller.ID,
			StudentName: name,
			Date:        str(d.Date),
			Status:      models.AttendanceStatus(d.Status),
		})
	}
	return out
}

// Notification maps a stream event. The type is always General and a missing
// timestamp becomes now.
func (n *Normalizer) Notification(userID string, d dto.NotificationDTO) (models.Notification, error) {
	if d.ID == nil {
		return models.Notification{}, mappingError("notification", "id")
	}
	createdAt := str(d.CreatedAt)
	if d.CreatedAt == nil {
		createdAt = n.now().UTC().Format(time.RFC3339Nano)
	}
	return models.Notification{
		ID:        *d.ID,
		Title:     str(d.Title),
		Message:   str(d.Message),
		Type:      models.NotificationGeneral,
		IsRead:    d.IsRead,
		CreatedAt: createdAt,
		UserID:    userID,
	}, nil
}
