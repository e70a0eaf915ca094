package dto

// Envelope is the uniform backend response wrapper. Some endpoints report
// success through "success" instead of "isSuccess".
type Envelope[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message"`
	IsSuccess *bool  `json:"isSuccess"`
	Success   *bool  `json:"success"`
	ErrorCode int    `json:"errorCode"`
}

// Succeeded reports whether either success flag is true.
func (e Envelope[T]) Succeeded() bool {
	return (e.IsSuccess != nil && *e.IsSuccess) || (e.Success != nil && *e.Success)
}

// PagedResult is the backend's paging wrapper.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type LoginDTO struct {
	UserName             string `json:"userName"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Token                string `json:"token"`
	RefreshToken         string `json:"refreshToken"`
	AccessTokenExpiresAt string `json:"accessTokenExpiresAt"`
}

type RefreshDTO struct {
	AccessToken           string `json:"accessToken"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresAt string `json:"refreshTokenExpiresAt"`
}

type ManagedUserDTO struct {
	ID          *string `json:"id"`
	UserName    string  `json:"userName"`
	Name        *string `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"isActive"`
	CreatedDate string  `json:"createdDate"`
}

// DepartmentDTO accepts both historical spellings of the head fields.
type DepartmentDTO struct {
	ID                   *int64  `json:"id"`
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	HeadOfDepartmentID   *string `json:"headOfDepartmentId"`
	HeadDepartmentID     *string `json:"headDepartmentId"`
	HeadOfDepartmentName *string `json:"headOfDepartmentName"`
	HeadDepartmentName   *string `json:"headDepartmentName"`
	HeadName             *string `json:"headName"`
}

type CourseDTO struct {
	ID           *int64  `json:"id"`
	Name         *string `json:"name"`
	Code         string  `json:"code"`
	Description  *string `json:"description"`
	Credits      Number  `json:"credits"`
	DepartmentID int64   `json:"departmentId"`
}

type ManageableCourseDTO struct {
	ID             *int64  `json:"id"`
	Name           *string `json:"name"`
	Code           string  `json:"code"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
}

type ManagedClassStudentDTO struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

type ManagedClassDTO struct {
	ID             *int64                   `json:"id"`
	Name           *string                  `json:"name"`
	IsActive       bool                     `json:"isActive"`
	Semester       Number                   `json:"semester"`
	StartDate      *string                  `json:"startDate"`
	EndDate        *string                  `json:"endDate"`
	CourseID       *int64                   `json:"courseId"`
	CourseName     *string                  `json:"courseName"`
	DepartmentID   int64                    `json:"departmentId"`
	DepartmentName *string                  `json:"departmentName"`
	TeacherID      *string                  `json:"teacherId"`
	TeacherName    *string                  `json:"teacherName"`
	Students       []ManagedClassStudentDTO `json:"students"`
}

type StudentClassDTO struct {
	ClassID        *int64  `json:"classId"`
	ClassName      *string `json:"className"`
	Semester       Number  `json:"semester"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	CourseName     *string `json:"courseName"`
	TeacherName    *string `json:"teacherName"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName *string `json:"departmentName"`
}

type ManagedAssignmentDTO struct {
	ID                 *int64  `json:"id"`
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	DueDate            *string `json:"dueDate"`
	ClassID            int64   `json:"classId"`
	ClassName          *string `json:"className"`
	CourseName         *string `json:"courseName"`
	CreatedByTeacherID string  `json:"createdByTeacherId"`
	TeacherName        *string `json:"teacherName"`
	CreatedDate        string  `json:"createdDate"`
}

type StudentAssignmentDTO struct {
	AssignmentID *int64  `json:"assignmentId"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"dueDate"`
	ClassName    *string `json:"className"`
}

type AssignmentStudentGradeDTO struct {
	StudentID          string   `json:"studentId"`
	StudentName        string   `json:"studentName"`
	Grade              *float64 `json:"grade"`
	Remarks            *string  `json:"remarks"`
	IsVisibleToStudent bool     `json:"isVisibleToStudent"`
	SubmittedDate      *string  `json:"submittedDate"`
}

type StudentGradeDTO struct {
	AssignmentID    int64    `json:"assignmentId"`
	AssignmentTitle *string  `json:"assignmentTitle"`
	ClassName       *string  `json:"className"`
	CourseName      *string  `json:"courseName"`
	SubmittedDate   *string  `json:"submittedDate"`
	Grade           *float64 `json:"grade"`
	Remarks         *string  `json:"remarks"`
}

type TeacherAttendanceDTO struct {
	StudentID   *string `json:"studentId"`
	StudentName *string `json:"studentName"`
	Date        *string `json:"date"`
	Status      int     `json:"status"`
}

type StudentAttendanceDTO struct {
	ClassID   int64   `json:"classId"`
	ClassName *string `json:"className"`
	Date      *string `json:"date"`
	Status    int     `json:"status"`
}

type NotificationDTO struct {
	ID        *int64  `json:"id"`
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	IsRead    bool    `json:"isRead"`
	CreatedAt *string `json:"createdAt"`
}

type TeacherDashboardStatsDTO struct {
	TotalAssignedCourses int64 `json:"totalAssignedCourses"`
	TotalStudents        int64 `json:"totalStudents"`
	TotalAssignments     int64 `json:"totalAssignments"`
}

type StudentDashboardStatsDTO struct {
	TotalEnrolledCourses int64   `json:"totalEnrolledCourses"`
	TotalEnrolledClasses int64   `json:"totalEnrolledClasses"`
	GPA                  float64 `json:"gpa"`
}

// Outbound payloads.

type RefreshTokenPayload struct {
	RefreshToken string `json:"refreshToken"`
}

type DepartmentPayload struct {
	ID                 int64   `json:"id,omitempty"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	HeadOfDepartmentID *string `json:"headOfDepartmentId"`
}

type CoursePayload struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	Credits      int    `json:"credits"`
	DepartmentID int64  `json:"departmentId"`
}

// ClassPayload is posted for class create and update, including legacy mirror writes.
type ClassPayload struct {
	ID           int64    `json:"id,omitempty"`
	Name         string   `json:"name"`
	IsActive     bool     `json:"isActive"`
	Semester     int      `json:"semester"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	DepartmentID int64    `json:"departmentId"`
	CourseID     *int64   `json:"courseId"`
	TeacherID    *string  `json:"teacherId"`
	StudentIDs   []string `json:"studentIds"`
}

type ClassStudentsPayload struct {
	StudentIDs []string `json:"studentIds"`
}

type AssignmentPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	ClassID     int64  `json:"classId"`
}

type GradePayload struct {
	StudentID          string   `json:"studentId"`
	Grade              *float64 `json:"grade,omitempty"`
	Remarks            string   `json:"remarks,omitempty"`
	IsVisibleToStudent bool     `json:"isVisibleToStudent"`
}

type AttendancePayload struct {
	ClassID   int64  `json:"classId"`
	StudentID string `json:"studentId"`
	Status    int    `json:"status"`
}
