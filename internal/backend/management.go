package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
)

func (c *Client) ListManagedClasses(ctx context.Context) ([]dto.ManagedClassDTO, error) {
	return call[[]dto.ManagedClassDTO](ctx, c, "management.classes.list", http.MethodGet, "management/Classes", nil)
}

func (c *Client) CreateClass(ctx context.Context, payload dto.ClassPayload) error {
	payload.ID = 0
	return c.exec(ctx, "management.classes.create", http.MethodPost, "management/Classes", withRoster(payload))
}

func (c *Client) UpdateClass(ctx context.Context, id int64, payload dto.ClassPayload) error {
	payload.ID = id
	return c.exec(ctx, "management.classes.update", http.MethodPut, fmt.Sprintf("management/Classes/%d", id), withRoster(payload))
}

func (c *Client) DeleteClass(ctx context.Context, id int64) error {
	return c.exec(ctx, "management.classes.delete", http.MethodDelete, fmt.Sprintf("management/Classes/%d", id), nil)
}

func (c *Client) ListClassStudents(ctx context.Context, classID int64) ([]dto.ManagedClassStudentDTO, error) {
	return call[[]dto.ManagedClassStudentDTO](ctx, c, "management.classes.students", http.MethodGet, fmt.Sprintf("management/Classes/%d/students", classID), nil)
}

// UpdateClassStudents replaces the class roster.
func (c *Client) UpdateClassStudents(ctx context.Context, classID int64, studentIDs []string) error {
	if studentIDs == nil {
		studentIDs = []string{}
	}
	return c.exec(ctx, "management.classes.students.update", http.MethodPut,
		fmt.Sprintf("management/Classes/%d/students", classID), dto.ClassStudentsPayload{StudentIDs: studentIDs})
}

// ListManageableCourses returns the courses the caller may attach to classes.
func (c *Client) ListManageableCourses(ctx context.Context) ([]dto.ManageableCourseDTO, error) {
	return call[[]dto.ManageableCourseDTO](ctx, c, "management.classes.courses", http.MethodGet, "management/Classes/courses", nil)
}

func (c *Client) ListManagedAssignments(ctx context.Context) ([]dto.ManagedAssignmentDTO, error) {
	return call[[]dto.ManagedAssignmentDTO](ctx, c, "management.assignments.list", http.MethodGet, "management/Assignments", nil)
}

func (c *Client) CreateAssignment(ctx context.Context, payload dto.AssignmentPayload) error {
	return c.exec(ctx, "management.assignments.create", http.MethodPost, "management/Assignments", payload)
}

func (c *Client) ListAssignmentStudents(ctx context.Context, assignmentID int64) ([]dto.AssignmentStudentGradeDTO, error) {
	return call[[]dto.AssignmentStudentGradeDTO](ctx, c, "management.assignments.students", http.MethodGet,
		fmt.Sprintf("management/Assignments/%d/students", assignmentID), nil)
}

func (c *Client) GradeAssignment(ctx context.Context, assignmentID int64, payload dto.GradePayload) error {
	return c.exec(ctx, "management.assignments.grade", http.MethodPost, fmt.Sprintf("management/Assignments/%d/grade", assignmentID), payload)
}

func withRoster(p dto.ClassPayload) dto.ClassPayload {
	if p.StudentIDs == nil {
		p.StudentIDs = []string{}
	}
	return p
}
