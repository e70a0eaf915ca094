package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type studentSource interface {
	StudentRows(ctx context.Context, caller models.User, query string) ([]models.StudentRow, error)
	StudentOverview(ctx context.Context, caller models.User, studentID string) (*models.StudentAcademicOverview, error)
}

// StudentHandler exposes student listings with their academic overview.
type StudentHandler struct {
	students studentSource
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentSource) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students with semester, subjects, teachers and classes
// @Tags Students
// @Produce json
// @Param q query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	rows, err := h.students.StudentRows(c.Request.Context(), user, searchQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Overview godoc
// @Summary Academic overview of one student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/overview [get]
func (h *StudentHandler) Overview(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	overview, err := h.students.StudentOverview(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
