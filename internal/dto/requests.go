package dto

import "github.com/noah-isme/sma-console-gateway/internal/models"

// LoginRequest is forwarded unchanged to the backend.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RegisterRequest creates an account; it is forwarded unchanged to the backend.
type RegisterRequest struct {
	UserName        string `json:"userName" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,oneof=Admin Teacher Student"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

type DepartmentRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	HeadDepartmentID string `json:"headDepartmentId"`
}

type CourseRequest struct {
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" validate:"min=1"`
	DepartmentID int64  `json:"departmentId" validate:"required,gt=0"`
}

// ClassRequest creates or updates a class. Missing course and teacher are
// resolved before the backend call.
type ClassRequest struct {
	Name         string   `json:"name" validate:"required"`
	IsActive     bool     `json:"isActive"`
	Semester     int      `json:"semester" validate:"min=1,max=8"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate" validate:"required"`
	DepartmentID int64    `json:"departmentId" validate:"required,gt=0"`
	CourseID     *int64   `json:"courseId"`
	TeacherID    *string  `json:"teacherId"`
	StudentIDs   []string `json:"studentIds"`
}

type ClassStudentsRequest struct {
	StudentIDs []string `json:"studentIds"`
}

// OfferingRequest is one offering row of the academic setup form.
type OfferingRequest struct {
	CourseID   int64    `json:"courseId" validate:"required,gt=0"`
	TeacherIDs []string `json:"teacherIds" validate:"required,min=1"`
	StudentIDs []string `json:"studentIds"`
}

type SaveSetupsRequest struct {
	Offerings []OfferingRequest `json:"offerings" validate:"dive"`
}

// Drafts converts the form rows into drafts.
func (r SaveSetupsRequest) Drafts() []models.ClassSubjectSetupDraft {
	out := make([]models.ClassSubjectSetupDraft, 0, len(r.Offerings))
	for _, o := range r.Offerings {
		out = append(out, models.ClassSubjectSetupDraft{
			CourseID:   o.CourseID,
			TeacherIDs: o.TeacherIDs,
			StudentIDs: o.StudentIDs,
		})
	}
	return out
}

type EnrollmentRequest struct {
	CourseIDs []int64 `json:"courseIds"`
}

type AssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	ClassID     int64  `json:"classId" validate:"required,gt=0"`
}

// GradeRequest grades one student; a nil grade clears it.
type GradeRequest struct {
	StudentID          string   `json:"studentId" validate:"required"`
	Grade              *float64 `json:"grade" validate:"omitempty,min=0,max=100"`
	Remarks            string   `json:"remarks"`
	IsVisibleToStudent bool     `json:"isVisibleToStudent"`
}

type AttendanceRequest struct {
	ClassID   int64  `json:"classId" validate:"required,gt=0"`
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=Present Absent Late"`
}

// ListQuery carries the navigation search query.
type ListQuery struct {
	Q    string `form:"q"`
	Role string `form:"role"`
}

// ExportQuery selects an export encoding.
type ExportQuery struct {
	Format string `form:"format"`
	Q      string `form:"q"`
}
