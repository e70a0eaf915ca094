package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
)

func (c *Client) CreateAttendance(ctx context.Context, payload dto.AttendancePayload) error {
	return c.exec(ctx, "teacher.attendance.create", http.MethodPost, "teacher/Attendance", payload)
}

func (c *Client) ListClassAttendance(ctx context.Context, classID int64) ([]dto.TeacherAttendanceDTO, error) {
	return call[[]dto.TeacherAttendanceDTO](ctx, c, "teacher.attendance.list", http.MethodGet, fmt.Sprintf("teacher/Attendance/%d", classID), nil)
}

func (c *Client) TeacherDashboardStats(ctx context.Context) (dto.TeacherDashboardStatsDTO, error) {
	return call[dto.TeacherDashboardStatsDTO](ctx, c, "teacher.dashboard", http.MethodGet, "teacher/dashboard-stats", nil)
}
