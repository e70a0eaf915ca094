package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

// MessageStreamUnavailable is reported when the notification stream cannot be opened.
const MessageStreamUnavailable = "Failed to connect to notifications stream."

func (c *Client) ListStudentClasses(ctx context.Context) (dto.PagedResult[dto.StudentClassDTO], error) {
	return call[dto.PagedResult[dto.StudentClassDTO]](ctx, c, "student.classes.list", http.MethodGet, "student/Classes", nil)
}

func (c *Client) ListStudentAssignments(ctx context.Context) ([]dto.StudentAssignmentDTO, error) {
	return call[[]dto.StudentAssignmentDTO](ctx, c, "student.assignments.list", http.MethodGet, "student/Assignments", nil)
}

func (c *Client) ListStudentGrades(ctx context.Context) ([]dto.StudentGradeDTO, error) {
	return call[[]dto.StudentGradeDTO](ctx, c, "student.grades.list", http.MethodGet, "student/Assignments/grads", nil)
}

func (c *Client) ListStudentAttendance(ctx context.Context) ([]dto.StudentAttendanceDTO, error) {
	return call[[]dto.StudentAttendanceDTO](ctx, c, "student.attendance.list", http.MethodGet, "student/Attendance", nil)
}

func (c *Client) StudentDashboardStats(ctx context.Context) (dto.StudentDashboardStatsDTO, error) {
	return call[dto.StudentDashboardStatsDTO](ctx, c, "student.dashboard", http.MethodGet, "student/dashboard-stats", nil)
}

// SubmitAssignment uploads a submission file as multipart field "file".
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID int64, filename string, content io.Reader) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build submission")
	}
	if _, err := io.Copy(part, content); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read submission")
	}
	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build submission")
	}

	const op = "student.assignments.submit"
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("student/Assignments/%d/submit", assignmentID), buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	raw, err := c.send(ctx, op, req)
	if err != nil {
		return err
	}
	_, err = unwrap[bool](op, raw)
	return err
}

// OpenNotificationStream opens the server-push notification feed. The caller
// owns the returned body and must close it; cancelling ctx tears the
// connection down.
func (c *Client) OpenNotificationStream(ctx context.Context) (io.ReadCloser, error) {
	const op = "student.notifications.stream"
	req, err := c.newRequest(ctx, http.MethodGet, "student/Notifications/stream", nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	start := time.Now()
	resp, err := c.stream.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return nil, appErrors.Wrap(err, appErrors.ErrBackendUnreachable.Code, appErrors.ErrBackendUnreachable.Status, appErrors.MessageBackendUnreachable)
	}
	c.observe(op, resp.StatusCode, start)

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close() //nolint:errcheck
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, c.statusError(ctx, op, resp)
		}
		c.logger.Warn("notification stream rejected", zap.Int("status", resp.StatusCode))
		return nil, appErrors.Wrap(fmt.Errorf("upstream status %d", resp.StatusCode),
			appErrors.ErrBackendFailure.Code, appErrors.ErrBackendFailure.Status, MessageStreamUnavailable)
	}
	return resp.Body, nil
}
