package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type attendanceService interface {
	Mark(ctx context.Context, req dto.AttendanceRequest) error
	ForClass(ctx context.Context, classID int64) ([]models.Attendance, error)
	Mine(ctx context.Context, caller models.User) ([]models.Attendance, error)
}

// AttendanceHandler records and lists attendance.
type AttendanceHandler struct {
	attendance attendanceService
}

func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Mark godoc
// @Summary Record attendance for one student
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.AttendanceRequest true "Attendance"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// ForClass godoc
// @Summary Attendance records of a class
// @Tags Attendance
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/attendance [get]
func (h *AttendanceHandler) ForClass(c *gin.Context) {
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.attendance.ForClass(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Mine godoc
// @Summary Attendance of the calling student
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/me [get]
func (h *AttendanceHandler) Mine(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	rows, err := h.attendance.Mine(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
