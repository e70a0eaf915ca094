package service

import (
	"context"
	"io"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
)

// fakeBackend is an in-memory stand-in for the upstream API client.
type fakeBackend struct {
	departments     []dto.DepartmentDTO
	courses         []dto.CourseDTO
	manageable      []dto.ManageableCourseDTO
	users           []dto.ManagedUserDTO
	usersErr        error
	writeErr        error
	managedClasses  []dto.ManagedClassDTO
	studentClasses  []dto.StudentClassDTO
	assignments     []dto.ManagedAssignmentDTO
	studentWork     []dto.StudentAssignmentDTO
	gradingRows     []dto.AssignmentStudentGradeDTO
	attendance      []dto.StudentAttendanceDTO
	departmentCalls int
	createdClass    *dto.ClassPayload
	updatedClass    *dto.ClassPayload
	rosterIDs       []string
	createdCourse   *dto.CoursePayload
	createdDept     *dto.DepartmentPayload
	activated       []string
	deactivated     []string
	grades          []dto.GradePayload
	attendanceMarks []dto.AttendancePayload
	submittedFile   string
	createdWork     *dto.AssignmentPayload
}

func (f *fakeBackend) ListDepartments(context.Context) ([]dto.DepartmentDTO, error) {
	f.departmentCalls++
	return f.departments, nil
}

func (f *fakeBackend) GetDepartment(_ context.Context, id int64) (dto.DepartmentDTO, error) {
	for _, d := range f.departments {
		if d.ID != nil && *d.ID == id {
			return d, nil
		}
	}
	return dto.DepartmentDTO{}, nil
}

func (f *fakeBackend) CreateDepartment(_ context.Context, payload dto.DepartmentPayload) error {
	f.createdDept = &payload
	return f.writeErr
}

func (f *fakeBackend) UpdateDepartment(_ context.Context, _ int64, payload dto.DepartmentPayload) error {
	f.createdDept = &payload
	return f.writeErr
}

func (f *fakeBackend) DeleteDepartment(context.Context, int64) error { return f.writeErr }

func (f *fakeBackend) ListCourses(context.Context) ([]dto.CourseDTO, error) { return f.courses, nil }

func (f *fakeBackend) GetCourse(context.Context, int64) (dto.CourseDTO, error) {
	if len(f.courses) == 0 {
		return dto.CourseDTO{}, nil
	}
	return f.courses[0], nil
}

func (f *fakeBackend) CreateCourse(_ context.Context, payload dto.CoursePayload) error {
	f.createdCourse = &payload
	return f.writeErr
}

func (f *fakeBackend) UpdateCourse(_ context.Context, _ int64, payload dto.CoursePayload) error {
	f.createdCourse = &payload
	return f.writeErr
}

func (f *fakeBackend) DeleteCourse(context.Context, int64) error { return f.writeErr }

func (f *fakeBackend) ListManageableCourses(context.Context) ([]dto.ManageableCourseDTO, error) {
	return f.manageable, nil
}

func (f *fakeBackend) ListUsers(_ context.Context, role models.Role) ([]dto.ManagedUserDTO, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	if role == "" {
		return f.users, nil
	}
	out := []dto.ManagedUserDTO{}
	for _, u := range f.users {
		if models.Role(u.Role) == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) ActivateUser(_ context.Context, id string) error {
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeBackend) DeactivateUser(_ context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeBackend) DeleteUser(context.Context, string) error { return nil }

func (f *fakeBackend) Register(context.Context, dto.RegisterRequest) error { return nil }

func (f *fakeBackend) ListManagedClasses(context.Context) ([]dto.ManagedClassDTO, error) {
	return f.managedClasses, nil
}

func (f *fakeBackend) ListStudentClasses(context.Context) (dto.PagedResult[dto.StudentClassDTO], error) {
	return dto.PagedResult[dto.StudentClassDTO]{Items: f.studentClasses}, nil
}

func (f *fakeBackend) CreateClass(_ context.Context, payload dto.ClassPayload) error {
	f.createdClass = &payload
	return nil
}

func (f *fakeBackend) UpdateClass(_ context.Context, _ int64, payload dto.ClassPayload) error {
	f.updatedClass = &payload
	return nil
}

func (f *fakeBackend) DeleteClass(context.Context, int64) error { return nil }

func (f *fakeBackend) ListClassStudents(context.Context, int64) ([]dto.ManagedClassStudentDTO, error) {
	return []dto.ManagedClassStudentDTO{{StudentID: "s1", StudentName: "Ana"}}, nil
}

func (f *fakeBackend) UpdateClassStudents(_ context.Context, _ int64, ids []string) error {
	f.rosterIDs = ids
	return nil
}

func (f *fakeBackend) ListManagedAssignments(context.Context) ([]dto.ManagedAssignmentDTO, error) {
	return f.assignments, nil
}

func (f *fakeBackend) ListStudentAssignments(context.Context) ([]dto.StudentAssignmentDTO, error) {
	return f.studentWork, nil
}

func (f *fakeBackend) CreateAssignment(_ context.Context, payload dto.AssignmentPayload) error {
	f.createdWork = &payload
	return nil
}

func (f *fakeBackend) ListAssignmentStudents(context.Context, int64) ([]dto.AssignmentStudentGradeDTO, error) {
	return f.gradingRows, nil
}

func (f *fakeBackend) GradeAssignment(_ context.Context, _ int64, payload dto.GradePayload) error {
	f.grades = append(f.grades, payload)
	return nil
}

func (f *fakeBackend) SubmitAssignment(_ context.Context, _ int64, filename string, _ io.Reader) error {
	f.submittedFile = filename
	return nil
}

func (f *fakeBackend) ListStudentGrades(context.Context) ([]dto.StudentGradeDTO, error) {
	return nil, nil
}

func (f *fakeBackend) CreateAttendance(_ context.Context, payload dto.AttendancePayload) error {
	f.attendanceMarks = append(f.attendanceMarks, payload)
	return nil
}

func (f *fakeBackend) ListClassAttendance(context.Context, int64) ([]dto.TeacherAttendanceDTO, error) {
	return nil, nil
}

func (f *fakeBackend) ListStudentAttendance(context.Context) ([]dto.StudentAttendanceDTO, error) {
	return f.attendance, nil
}
