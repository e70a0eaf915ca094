package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type gradeService interface {
	Submissions(ctx context.Context, assignmentID int64) ([]models.AssignmentSubmission, error)
	Grade(ctx context.Context, assignmentID int64, req dto.GradeRequest) error
	Grades(ctx context.Context, caller models.User) ([]models.AssignmentSubmission, error)
}

// GradeHandler exposes grading for staff and grade listings for students.
type GradeHandler struct {
	grades gradeService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(grades gradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Submissions godoc
// @Summary Grading rows of an assignment
// @Tags Grades
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id}/students [get]
func (h *GradeHandler) Submissions(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.grades.Submissions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Grade godoc
// @Summary Grade one student
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body dto.GradeRequest true "Grade"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assignments/{id}/grade [post]
func (h *GradeHandler) Grade(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.grades.Grade(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// Mine godoc
// @Summary Grades of the calling student
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) Mine(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	rows, err := h.grades.Grades(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
