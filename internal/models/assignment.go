package models

// Assignment is coursework attached to a class.
type Assignment struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	ClassID     int64  `json:"classId"`
	ClassName   string `json:"className"`
	CourseName  string `json:"courseName"`
	TeacherID   string `json:"teacherId,omitempty"`
	TeacherName string `json:"teacherName"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// AssignmentSubmission is a per-student grading row. A nil Grade means ungraded.
type AssignmentSubmission struct {
	ID                 int64    `json:"id"`
	AssignmentID       int64    `json:"assignmentId"`
	AssignmentTitle    string   `json:"assignmentTitle,omitempty"`
	ClassName          string   `json:"className,omitempty"`
	CourseName         string   `json:"courseName,omitempty"`
	StudentID          string   `json:"studentId"`
	StudentName        string   `json:"studentName"`
	SubmittedAt        string   `json:"submittedAt"`
	Grade              *float64 `json:"grade"`
	Remarks            string   `json:"remarks"`
	IsVisibleToStudent bool     `json:"isVisibleToStudent"`
}
